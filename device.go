package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Device wraps a logical device together with the graphics queue and the
// two command pools everything else draws from. FramePool allocates the
// long lived, individually resettable per frame buffers; UploadPool is
// for short lived one time submissions.
type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device

	Queue      *Queue
	FramePool  *CommandPool
	UploadPool *CommandPool
}

// CreateDevice opens the logical device for this candidate, fetches its
// queue and creates both command pools on the selected queue family.
func (c *DeviceCandidate) CreateDevice(options *CreateDeviceOptions) (*Device, error) {
	if options == nil {
		options = &CreateDeviceOptions{}
	}
	if options.EnabledExtensions == nil {
		options.EnabledExtensions = DefaultDeviceExtensions()
	}

	device, err := c.PhysicalDevice.CreateLogicalDeviceWithOptions(QueueFamilySlice{c.QueueFamily}, options)
	if err != nil {
		return nil, err
	}

	device.Queue = device.GetQueue(c.QueueFamily)

	device.FramePool, err = device.CreateCommandPool(c.QueueFamily, vk.CommandPoolCreateResetCommandBufferBit)
	if err != nil {
		device.Destroy()
		return nil, err
	}

	device.UploadPool, err = device.CreateCommandPool(c.QueueFamily, vk.CommandPoolCreateTransientBit)
	if err != nil {
		device.Destroy()
		return nil, err
	}

	return device, nil
}

// Destroy releases the command pools and then the device itself. The
// caller must have waited for the device to go idle and destroyed every
// object created from it first.
func (d *Device) Destroy() {
	if d.UploadPool != nil {
		d.UploadPool.Destroy()
		d.UploadPool = nil
	}
	if d.FramePool != nil {
		d.FramePool.Destroy()
		d.FramePool = nil
	}
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() {
	vk.DeviceWaitIdle(d.VKDevice)
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {

	var vkq vk.Queue

	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)

	var queue Queue
	queue.QueueFamily = qf
	queue.Device = d
	queue.VKQueue = vkq

	return &queue
}

// UploadBlocking allocates a transient command buffer, lets record fill
// it, submits it and blocks until the GPU has finished. The staged
// upload paths are built on top of this.
func (d *Device) UploadBlocking(record func(cmd *CommandBuffer) error) error {
	cmd, err := d.UploadPool.AllocateBuffer()
	if err != nil {
		return err
	}
	defer d.UploadPool.FreeBuffer(cmd)

	fence, err := d.CreateFence(false)
	if err != nil {
		return err
	}
	defer fence.Destroy()

	err = cmd.BeginOneTime()
	if err != nil {
		return err
	}

	err = record(cmd)
	if err != nil {
		return err
	}

	err = cmd.End()
	if err != nil {
		return err
	}

	err = d.Queue.SubmitWithFence(fence, cmd)
	if err != nil {
		return err
	}

	return d.WaitForFences(true, NoTimeout, fence)
}

type AllocationRequirements struct {
	Size           int
	MemoryTypeBits uint32
}

func (d *Device) AllocateForBuffer(b *Buffer, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	ar := b.AllocationRequirements()
	mem, err := d.Allocate(ar.Size, ar.MemoryTypeBits, memoryProperties)
	if err != nil {
		return nil, err
	}
	return mem, err
}

func (d *Device) Allocate(sizeInBytes int, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {

	var allocateInfo = vk.MemoryAllocateInfo{}
	allocateInfo.SType = vk.StructureTypeMemoryAllocateInfo
	allocateInfo.AllocationSize = vk.DeviceSize(sizeInBytes)

	var err error

	allocateInfo.MemoryTypeIndex, err = d.PhysicalDevice.FindMemoryType(
		memoryTypeBits,
		vk.MemoryPropertyFlagBits(memoryProperties))

	if err != nil {
		return nil, err
	}

	var deviceMemory vk.DeviceMemory

	err = vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory))
	if err != nil {
		return nil, err
	}

	var ret DeviceMemory

	ret.Size = uint64(sizeInBytes)
	ret.Device = d
	ret.VKDeviceMemory = deviceMemory

	return &ret, nil
}
