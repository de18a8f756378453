package vkr

import (
	"math"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// NoTimeout makes fence waits block until the fence signals.
const NoTimeout = time.Duration(math.MaxInt64)

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

func (d *Device) VKGetFenceStatus(f vk.Fence) vk.Result {
	return vk.GetFenceStatus(d.VKDevice, f)
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

func fenceCreateInfo(signaled bool) vk.FenceCreateInfo {
	var info = vk.FenceCreateInfo{}
	info.SType = vk.StructureTypeFenceCreateInfo
	if signaled {
		info.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	return info
}

func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	var fence vk.Fence
	info := fenceCreateInfo(signaled)
	err := vk.Error(vk.CreateFence(d.VKDevice, &info, nil, &fence))
	if err != nil {
		return nil, err
	}
	return fence, nil
}

// CreateFence creates a fence. Frame slots create theirs signaled so the
// very first wait on a slot returns immediately.
func (d *Device) CreateFence(signaled bool) (*Fence, error) {

	fence, err := d.VKCreateFence(signaled)
	if err != nil {
		return nil, err
	}

	var ret Fence
	ret.VKFence = fence
	ret.Device = d
	return &ret, nil
}

func (d *Device) WaitForFences(waitForAll bool, ts time.Duration, fences ...*Fence) error {

	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}

	var wait vk.Bool32
	if waitForAll {
		wait = vk.True
	} else {
		wait = vk.False
	}

	timeout := uint64(ts.Nanoseconds())
	if ts == NoTimeout {
		timeout = vk.MaxUint64
	}

	err := vk.Error(vk.WaitForFences(d.VKDevice, uint32(len(fences)), f, wait, timeout))

	if err != nil {
		return err
	}

	return nil
}

// Wait blocks until the fence signals or the timeout expires.
func (f *Fence) Wait(ts time.Duration) error {
	return f.Device.WaitForFences(true, ts, f)
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	return vk.Error(vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}))
}

func (f *Fence) Status() vk.Result {
	return f.Device.VKGetFenceStatus(f.VKFence)
}

func (f *Fence) Destroy() {
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
}
