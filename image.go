package vkr

import (
	"image"
	"image/draw"
	"os"

	_ "image/jpeg"
	_ "image/png"

	vk "github.com/vulkan-go/vulkan"
)

type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
}

func (i *Image) GetMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &memRequirements)
	return memRequirements
}

func (d *Device) CreateImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlags) (*Image, error) {
	var imageInfo = vk.ImageCreateInfo{}
	imageInfo.SType = vk.StructureTypeImageCreateInfo
	imageInfo.ImageType = vk.ImageType2d
	imageInfo.Extent.Width = extent.Width
	imageInfo.Extent.Height = extent.Height
	imageInfo.Extent.Depth = 1
	imageInfo.MipLevels = 1
	imageInfo.ArrayLayers = 1
	imageInfo.Format = format
	imageInfo.Tiling = tiling
	imageInfo.InitialLayout = vk.ImageLayoutUndefined
	imageInfo.Usage = usage
	imageInfo.Samples = vk.SampleCount1Bit
	imageInfo.SharingMode = vk.SharingModeExclusive

	var img vk.Image

	err := vk.Error(vk.CreateImage(d.VKDevice, &imageInfo, nil, &img))
	if err != nil {
		return nil, err
	}

	var ret Image

	ret.Device = d
	ret.VKImage = img
	ret.VKFormat = format

	return &ret, nil
}

// BoundImage is an image with its backing allocation.
type BoundImage struct {
	Image
	DeviceMemory *DeviceMemory
}

func (d *Device) CreateBoundImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlags, props vk.MemoryPropertyFlags) (*BoundImage, error) {
	i, err := d.CreateImage(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := i.GetMemoryRequirements()

	mr.Deref()

	mem, err := d.Allocate(int(mr.Size), mr.MemoryTypeBits, props)
	if err != nil {
		i.Destroy()
		return nil, err
	}

	err = vk.Error(vk.BindImageMemory(d.VKDevice, i.VKImage, mem.VKDeviceMemory, 0))
	if err != nil {
		mem.Destroy()
		i.Destroy()
		return nil, err
	}

	boundImage := &BoundImage{}

	boundImage.Device = d
	boundImage.VKImage = i.VKImage
	boundImage.DeviceMemory = mem
	boundImage.VKFormat = i.VKFormat

	return boundImage, nil
}

func (b *BoundImage) Destroy() {
	b.Image.Destroy()
	b.DeviceMemory.Destroy()
}

// decodeRGBA reads any registered image format and converts it to the
// tightly packed RGBA layout uploads expect.
func decodeRGBA(file string) (*image.RGBA, error) {
	imageFile, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer imageFile.Close()

	src, _, err := image.Decode(imageFile)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)

	return m, nil
}

// TransitionImageLayout records the barrier that moves an image between
// the layouts the upload path needs. Only the undefined to transfer dst
// and transfer dst to shader read transitions are supported.
func (cb *CommandBuffer) TransitionImageLayout(img *Image, oldLayout, newLayout vk.ImageLayout) {
	var barrier = vk.ImageMemoryBarrier{}
	barrier.SType = vk.StructureTypeImageMemoryBarrier
	barrier.OldLayout = oldLayout
	barrier.NewLayout = newLayout
	barrier.SrcQueueFamilyIndex = vk.QueueFamilyIgnored
	barrier.DstQueueFamilyIndex = vk.QueueFamilyIgnored
	barrier.Image = img.VKImage
	barrier.SubresourceRange.AspectMask = vk.ImageAspectFlags(vk.ImageAspectColorBit)
	barrier.SubresourceRange.BaseMipLevel = 0
	barrier.SubresourceRange.LevelCount = 1
	barrier.SubresourceRange.BaseArrayLayer = 0
	barrier.SubresourceRange.LayerCount = 1

	var sourceStage, destStage vk.PipelineStageFlags

	if oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal {
		barrier.SrcAccessMask = 0
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)

		sourceStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		destStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)

	} else if oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal {
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)

		sourceStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
		destStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	}

	vk.CmdPipelineBarrier(cb.VK(), sourceStage, destStage, 0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
}

// CopyBufferToImage records a full copy of a tightly packed staging
// buffer into an image that is in the transfer dst layout.
func (cb *CommandBuffer) CopyBufferToImage(src *Buffer, dst *Image, width, height int) {
	vk.CmdCopyBufferToImage(cb.VK(), src.VKBuffer, dst.VKImage, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{
		{
			BufferOffset:      0,
			BufferRowLength:   0,
			BufferImageHeight: 0,
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:       0,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
			ImageOffset: vk.Offset3D{},
			ImageExtent: vk.Extent3D{
				Width: uint32(width), Height: uint32(height), Depth: 1,
			},
		},
	})
}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}
