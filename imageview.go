package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// ImageView is a typed view over an Image. Views are what render passes
// and descriptors bind, the image itself is never bound directly.
type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// imageViewCreateInfo describes a 2D view over the whole of the first
// mip level and array layer, with identity swizzles.
func imageViewCreateInfo(image vk.Image, format vk.Format, mask vk.ImageAspectFlags) vk.ImageViewCreateInfo {
	return vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: mask,
			LevelCount: 1,
			LayerCount: 1,
		},
	}
}

// CreateImageView makes a color view over the image.
func (i *Image) CreateImageView() (*ImageView, error) {
	return i.CreateImageViewWithAspectMask(vk.ImageAspectFlags(vk.ImageAspectColorBit))
}

// CreateImageViewWithAspectMask makes a view over the given aspect of
// the image, in the image's own format.
func (i *Image) CreateImageViewWithAspectMask(mask vk.ImageAspectFlags) (*ImageView, error) {
	createInfo := imageViewCreateInfo(i.VKImage, i.VKFormat, mask)

	var view vk.ImageView

	err := vk.Error(vk.CreateImageView(i.Device.VKDevice, &createInfo, nil, &view))
	if err != nil {
		return nil, err
	}

	return &ImageView{Device: i.Device, VKImageView: view}, nil
}

// Destroy releases the view. The underlying image is untouched. Safe to
// call again, swapchain rebuilds destroy and remake views freely.
func (i *ImageView) Destroy() {
	if i.VKImageView != vk.NullImageView {
		vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
		i.VKImageView = vk.NullImageView
	}
}
