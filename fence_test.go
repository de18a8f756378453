package vkr

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

// Frame slots create their fence signaled so the first wait on every
// slot returns without blocking.
func TestFenceCreateInfoSignaled(t *testing.T) {
	info := fenceCreateInfo(true)
	if info.Flags&vk.FenceCreateFlags(vk.FenceCreateSignaledBit) == 0 {
		t.Error("signaled flag missing")
	}

	info = fenceCreateInfo(false)
	if info.Flags != 0 {
		t.Errorf("unsignaled fence got flags %v", info.Flags)
	}
}
