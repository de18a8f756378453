package vkr

import (
	"image"

	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

// ImmutableImage is a device local texture filled once through a staging
// buffer. Its contents never change after creation, so frames can sample
// it without synchronizing against the CPU.
type ImmutableImage struct {
	image *BoundImage
	view  *ImageView
}

// CreateImmutableImage uploads data into a fresh device local image and
// leaves it in the shader read only layout. The byte slice must hold
// tightly packed texels matching format and extent.
func (d *Device) CreateImmutableImage(format vk.Format, extent vk.Extent2D, usage vk.ImageUsageFlags, data []byte) (*ImmutableImage, error) {
	staging, stagingMemory, err := d.CreateAndBindBufferAndMemory(
		uint64(len(data)), 0,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
		vk.SharingModeExclusive,
	)
	if err != nil {
		return nil, err
	}

	defer staging.Destroy()
	defer stagingMemory.Destroy()

	err = stagingMemory.MapCopyUnmap(data)
	if err != nil {
		return nil, err
	}

	img, err := d.CreateBoundImage(extent, format, vk.ImageTilingOptimal,
		usage|vk.ImageUsageFlags(vk.ImageUsageTransferDstBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return nil, err
	}

	err = d.UploadBlocking(func(cmd *CommandBuffer) error {
		cmd.TransitionImageLayout(&img.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
		cmd.CopyBufferToImage(staging, &img.Image, int(extent.Width), int(extent.Height))
		cmd.TransitionImageLayout(&img.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
		return nil
	})
	if err != nil {
		img.Destroy()
		return nil, err
	}

	view, err := img.CreateImageView()
	if err != nil {
		img.Destroy()
		return nil, err
	}

	logger().Debug("uploaded immutable image",
		"width", extent.Width,
		"height", extent.Height,
		"size", units.HumanSize(float64(len(data))))

	var ret ImmutableImage

	ret.image = img
	ret.view = view

	return &ret, nil
}

// CreateTextureFromRGBA uploads the pixels of m as a sampled sRGB texture.
func (d *Device) CreateTextureFromRGBA(m *image.RGBA) (*ImmutableImage, error) {
	extent := vk.Extent2D{
		Width:  uint32(m.Bounds().Dx()),
		Height: uint32(m.Bounds().Dy()),
	}

	return d.CreateImmutableImage(vk.FormatR8g8b8a8Srgb, extent,
		vk.ImageUsageFlags(vk.ImageUsageSampledBit), m.Pix)
}

// CreateTextureFromFile decodes an image file and uploads it as a
// sampled sRGB texture. PNG and JPEG decoders are registered.
func (d *Device) CreateTextureFromFile(file string) (*ImmutableImage, error) {
	m, err := decodeRGBA(file)
	if err != nil {
		return nil, err
	}

	return d.CreateTextureFromRGBA(m)
}

// View returns the full color view of the image.
func (i *ImmutableImage) View() *ImageView {
	return i.view
}

// DSInfo describes the image for a combined image sampler descriptor.
func (i *ImmutableImage) DSInfo(sampler *Sampler) vk.DescriptorImageInfo {
	return vk.DescriptorImageInfo{
		Sampler:     sampler.VKSampler,
		ImageView:   i.view.VKImageView,
		ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	}
}

func (i *ImmutableImage) Destroy() {
	i.view.Destroy()
	i.image.Destroy()
}
