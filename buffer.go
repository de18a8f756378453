package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer are used to map hunks of data that are then bound to resources used by the pipeline
// and command buffers to render data.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
}

func (d *Device) CreateBufferWithOptions(sizeInBytes uint64, usage vk.BufferUsageFlags, sharing vk.SharingMode) (*Buffer, error) {

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       usage,
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	err := vk.Error(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer))
	if err != nil {
		return nil, err
	}

	var ret Buffer
	ret.VKBuffer = buffer
	ret.Device = d
	ret.Size = sizeInBytes

	return &ret, nil
}

// CreateAndBindBufferAndMemory creates a buffer, allocates memory that
// satisfies the buffer's reported requirements and binds the two at the
// given offset. The allocation is sized from the requirements, which may
// be larger than the requested buffer size.
func (d *Device) CreateAndBindBufferAndMemory(size uint64, offset uint64, usage vk.BufferUsageFlags, mprops vk.MemoryPropertyFlags, sharing vk.SharingMode) (*Buffer, *DeviceMemory, error) {

	buffer, err := d.CreateBufferWithOptions(size, usage, sharing)
	if err != nil {
		return nil, nil, err
	}
	memory, err := d.AllocateForBuffer(buffer, mprops)
	if err != nil {
		buffer.Destroy()
		return nil, nil, err
	}
	err = buffer.Bind(memory, offset)
	if err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, nil, err
	}
	return buffer, memory, nil
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	return memoryRequirements
}

func (b *Buffer) DSInfo(offset int) vk.DescriptorBufferInfo {
	var descriptorBufferInfo = vk.DescriptorBufferInfo{}
	descriptorBufferInfo.Buffer = b.VKBuffer
	descriptorBufferInfo.Offset = vk.DeviceSize(offset)
	descriptorBufferInfo.Range = vk.DeviceSize(b.Size)
	return descriptorBufferInfo
}

func (b *Buffer) AllocationRequirements() *AllocationRequirements {
	memoryRequirements := b.VKMemoryRequirements()
	mr := &memoryRequirements
	mr.Deref()

	return &AllocationRequirements{
		Size:           int(mr.Size),
		MemoryTypeBits: mr.MemoryTypeBits,
	}
}

func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
}
