package vkr

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// MappedBuffer keeps a host visible buffer permanently mapped so its
// contents can be overwritten every frame without a transfer submission.
// Use this for data like per frame uniforms that the CPU produces anew
// each draw.
type MappedBuffer struct {
	buffer *Buffer
	memory *DeviceMemory

	// size is the byte length fixed at creation. Overwrite only accepts
	// exactly this much data.
	size int

	ptr unsafe.Pointer
}

// CreateMappedBuffer creates a host visible, host coherent buffer of
// len(data) bytes, copies data into it and leaves the memory mapped for
// the buffer's lifetime.
func (d *Device) CreateMappedBuffer(usage vk.BufferUsageFlags, data []byte) (*MappedBuffer, error) {
	buffer, memory, err := d.CreateAndBindBufferAndMemory(uint64(len(data)), 0,
		usage,
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	ptr, err := memory.Map()
	if err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, err
	}

	m := &MappedBuffer{
		buffer: buffer,
		memory: memory,
		size:   len(data),
		ptr:    ptr,
	}
	m.copyIn(data)

	logger().Debug("created mapped buffer", "bytes", len(data))

	return m, nil
}

// Overwrite replaces the buffer contents. The new data must be exactly
// the buffer's byte length; anything else fails with ErrSizeMismatch and
// leaves the contents untouched.
func (m *MappedBuffer) Overwrite(data []byte) error {
	if len(data) != m.size {
		return ErrSizeMismatch
	}
	m.copyIn(data)
	return nil
}

func (m *MappedBuffer) copyIn(data []byte) {
	copy(ToBytes(m.ptr, m.size), data)
}

// Size returns the byte length fixed at creation.
func (m *MappedBuffer) Size() int {
	return m.size
}

// Bytes exposes the live mapped contents. The returned slice aliases
// device memory and is only valid until Destroy.
func (m *MappedBuffer) Bytes() []byte {
	return ToBytes(m.ptr, m.size)
}

func (m *MappedBuffer) VKBuffer() vk.Buffer {
	return m.buffer.VKBuffer
}

// DSInfo describes this buffer for a descriptor write.
func (m *MappedBuffer) DSInfo(offset int) vk.DescriptorBufferInfo {
	return m.buffer.DSInfo(offset)
}

// Destroy unmaps the memory and releases the buffer and its allocation.
func (m *MappedBuffer) Destroy() {
	if m.buffer == nil {
		return
	}
	m.memory.Unmap()
	m.buffer.Destroy()
	m.memory.Destroy()
	m.buffer = nil
	m.memory = nil
	m.ptr = nil
}
