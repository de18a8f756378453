package vkr

import (
	"github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

// ImmutableBuffer holds device local data that is uploaded exactly once
// through a staging buffer. No host side copy is kept afterwards. Use
// this for data like vertices and indices that never change.
type ImmutableBuffer struct {
	buffer *Buffer
	memory *DeviceMemory

	// size is the byte length fixed at creation.
	size int
}

// CreateImmutableBuffer uploads data into a fresh device local buffer.
// A host visible staging buffer is created, filled and copied into the
// destination with a blocking one time submission, then destroyed. The
// destination usage always includes transfer src and dst so the buffer
// can also be read back with Download.
func (d *Device) CreateImmutableBuffer(usage vk.BufferUsageFlags, data []byte) (*ImmutableBuffer, error) {
	staging, stagingMemory, err := d.CreateAndBindBufferAndMemory(uint64(len(data)), 0,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}
	defer func() {
		staging.Destroy()
		stagingMemory.Destroy()
	}()

	err = stagingMemory.MapCopyUnmap(data)
	if err != nil {
		return nil, err
	}

	dst, dstMemory, err := d.CreateAndBindBufferAndMemory(uint64(len(data)), 0,
		usage|vk.BufferUsageFlags(vk.BufferUsageTransferDstBit|vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	err = d.UploadBlocking(func(cmd *CommandBuffer) error {
		cmd.CmdCopyBuffer(staging, dst, len(data))
		return nil
	})
	if err != nil {
		dst.Destroy()
		dstMemory.Destroy()
		return nil, err
	}

	logger().Debug("uploaded immutable buffer", "size", units.HumanSize(float64(len(data))))

	return &ImmutableBuffer{
		buffer: dst,
		memory: dstMemory,
		size:   len(data),
	}, nil
}

// Download copies the buffer contents back to the host through a staging
// buffer. It blocks until the copy completes. This is mainly useful for
// verifying uploads.
func (b *ImmutableBuffer) Download() ([]byte, error) {
	d := b.buffer.Device

	staging, stagingMemory, err := d.CreateAndBindBufferAndMemory(uint64(b.size), 0,
		vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}
	defer func() {
		staging.Destroy()
		stagingMemory.Destroy()
	}()

	err = d.UploadBlocking(func(cmd *CommandBuffer) error {
		cmd.CmdCopyBuffer(b.buffer, staging, b.size)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ptr, err := stagingMemory.MapWithSize(b.size)
	if err != nil {
		return nil, err
	}
	data := make([]byte, b.size)
	copy(data, ToBytes(ptr, b.size))
	stagingMemory.Unmap()

	return data, nil
}

// Size returns the byte length fixed at creation.
func (b *ImmutableBuffer) Size() int {
	return b.size
}

func (b *ImmutableBuffer) VKBuffer() vk.Buffer {
	return b.buffer.VKBuffer
}

// DSInfo describes this buffer for a descriptor write.
func (b *ImmutableBuffer) DSInfo(offset int) vk.DescriptorBufferInfo {
	return b.buffer.DSInfo(offset)
}

func (b *ImmutableBuffer) Destroy() {
	if b.buffer == nil {
		return
	}
	b.buffer.Destroy()
	b.memory.Destroy()
	b.buffer = nil
	b.memory = nil
}
