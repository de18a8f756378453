package vkr

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

// Construction can fail at any stage and the error paths hand whatever
// exists to Destroy, so teardown must cope with partial state. The zero
// renderer is the extreme case.
func TestRendererDestroyPartial(t *testing.T) {
	r := &Renderer{}
	r.Destroy()
	r.Destroy()
}

// The walk is a flat list but the ownership is a tree, so every edge is
// checked against the step order: nothing may be destroyed before the
// nodes that depend on it.
func TestRendererTeardownOrder(t *testing.T) {
	order := map[string]int{}
	for i, step := range (&Renderer{}).teardown() {
		if _, ok := order[step.name]; ok {
			t.Fatalf("duplicate teardown step %q", step.name)
		}
		order[step.name] = i
	}

	edges := [][2]string{
		{"frame slots", "device"},
		{"framebuffers", "render pass"},
		{"framebuffers", "image views"},
		{"render pass", "device"},
		{"image views", "swapchain"},
		{"swapchain", "device"},
		{"swapchain", "surface"},
		{"device", "instance"},
		{"surface", "instance"},
	}
	for _, e := range edges {
		dependent, owner := e[0], e[1]
		di, ok := order[dependent]
		if !ok {
			t.Fatalf("no teardown step %q", dependent)
		}
		oi, ok := order[owner]
		if !ok {
			t.Fatalf("no teardown step %q", owner)
		}
		if di >= oi {
			t.Errorf("%q torn down at step %d, %q already gone at step %d", dependent, di, owner, oi)
		}
	}
}

func TestRendererResizeForcesRebuild(t *testing.T) {
	r := &Renderer{}
	r.Resize(vk.Extent2D{Width: 1024, Height: 768})

	if !r.rebuildNeeded {
		t.Error("resize did not schedule a rebuild")
	}
	if r.size.Width != 1024 || r.size.Height != 768 {
		t.Errorf("got size %dx%d", r.size.Width, r.size.Height)
	}

	// A pending resize surfaces through Acquire before the swapchain is
	// consulted, so no live chain is needed to observe it.
	_, rebuild, err := r.Acquire(&FrameSlot{})
	if err != nil {
		t.Fatal(err)
	}
	if !rebuild {
		t.Error("pending resize not reported as a rebuild")
	}
}
