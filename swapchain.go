package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	Device      *Device
	VKSwapchain vk.Swapchain
}

// chooseSurfaceFormat picks the first supported format from the
// preference order B8G8R8A8 sRGB then R8G8B8A8 sRGB, both in the sRGB
// nonlinear color space. Anything else is rejected rather than silently
// rendered into the wrong transfer function.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) (vk.SurfaceFormat, error) {
	preferred := []vk.Format{vk.FormatB8g8r8a8Srgb, vk.FormatR8g8b8a8Srgb}

	for _, want := range preferred {
		for i := range formats {
			formats[i].Deref()
			if formats[i].Format == want && formats[i].ColorSpace == vk.ColorSpaceSrgbNonlinear {
				return formats[i], nil
			}
		}
	}

	return vk.SurfaceFormat{}, ErrNoSuitableFormat
}

// choosePresentMode picks the first supported mode from the preference
// order, by default mailbox then fifo. Fifo is required by the standard
// but some surfaces still omit it, so ending up with no usable mode is
// an error rather than an assumption.
func choosePresentMode(modes []vk.PresentMode, preferred []vk.PresentMode) (vk.PresentMode, error) {
	if len(preferred) == 0 {
		preferred = []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeFifo}
	}

	for _, want := range preferred {
		for _, m := range modes {
			if m == want {
				return m, nil
			}
		}
	}

	return 0, ErrNoSuitablePresentMode
}

// chooseExtent resolves the swapchain size. When the surface reports the
// special ~0 extent the window system leaves the size to us and the
// requested size is clamped into the supported range per dimension.
// Otherwise the surface dictates the size and the requested one is
// ignored.
func chooseExtent(caps *vk.SurfaceCapabilities, requested vk.Extent2D) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 || caps.CurrentExtent.Height != vk.MaxUint32 {
		return caps.CurrentExtent
	}

	return vk.Extent2D{
		Width:  clampUint32(requested.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(requested.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseImageCount asks for one image more than the driver minimum so
// acquisition rarely blocks, capped at the maximum when the surface has
// one. A maximum of zero means unbounded.
func chooseImageCount(caps *vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// clampFramesInFlight fits the requested number of scheduler slots into
// the surface's supported image count range.
func clampFramesInFlight(requested int, caps *vk.SurfaceCapabilities) int {
	n := requested
	if n < int(caps.MinImageCount) {
		n = int(caps.MinImageCount)
	}
	if caps.MaxImageCount > 0 && n > int(caps.MaxImageCount) {
		n = int(caps.MaxImageCount)
	}
	return n
}

type CreateSwapchainOptions struct {
	OldSwapchain *Swapchain

	// Size is the wanted extent in pixels. It only applies when the
	// surface lets the application pick the size.
	Size vk.Extent2D

	// DesiredImageCount overrides the negotiated image count when
	// nonzero. It is still clamped to the supported range.
	DesiredImageCount int

	// PresentModes overrides the present mode preference order when
	// non-empty.
	PresentModes []vk.PresentMode
}

// CreateSwapchain negotiates a swapchain against the surface. Format,
// present mode, extent and image count all follow the negotiation
// helpers above. When the two queues come from different families the
// images are shared concurrently between them.
func (d *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options *CreateSwapchainOptions) (*Swapchain, error) {
	if options == nil {
		options = &CreateSwapchainOptions{}
	}

	modes, err := d.PhysicalDevice.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}

	presentMode, err := choosePresentMode(modes, options.PresentModes)
	if err != nil {
		return nil, err
	}

	formats, err := d.PhysicalDevice.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}

	format, err := chooseSurfaceFormat(formats)
	if err != nil {
		return nil, err
	}

	caps, err := d.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}

	extent := chooseExtent(caps, options.Size)

	imageCount := chooseImageCount(caps)
	if options.DesiredImageCount > 0 {
		imageCount = uint32(clampFramesInFlight(options.DesiredImageCount, caps))
	}

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
	}

	if options.OldSwapchain != nil {
		createInfo.OldSwapchain = options.OldSwapchain.VKSwapchain
	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphicsQueue.QueueFamily.Index), uint32(presentQueue.QueueFamily.Index)}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	} else {
		createInfo.QueueFamilyIndexCount = 0
		createInfo.PQueueFamilyIndices = nil
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var swapchain vk.Swapchain

	err = vk.Error(vk.CreateSwapchain(d.VKDevice, createInfo, nil, &swapchain))
	if err != nil {
		return nil, err
	}

	logger().Debug("created swapchain",
		"width", extent.Width,
		"height", extent.Height,
		"images", imageCount,
		"mode", presentMode)

	var ret Swapchain
	ret.VKSwapchain = swapchain
	ret.Device = d
	ret.Extent = extent
	ret.Format = format.Format

	return &ret, nil
}

func (s *Swapchain) GetImages() ([]*Image, error) {
	var imageCount uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, err
	}

	swapchainImages := make([]vk.Image, imageCount)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, swapchainImages))
	if err != nil {
		return nil, err
	}

	ret := make([]*Image, imageCount)
	for i := range swapchainImages {
		ret[i] = &Image{}
		ret[i].Device = s.Device
		ret[i].VKImage = swapchainImages[i]
		ret[i].VKFormat = s.Format
	}

	return ret, nil
}

// CreateImageViews makes one color view per swapchain image, in image
// order.
func (s *Swapchain) CreateImageViews() ([]*ImageView, error) {
	images, err := s.GetImages()
	if err != nil {
		return nil, err
	}

	views := make([]*ImageView, len(images))
	for i, img := range images {
		views[i], err = img.CreateImageView()
		if err != nil {
			for _, v := range views[:i] {
				v.Destroy()
			}
			return nil, err
		}
	}

	return views, nil
}

// staleness folds a presentation engine result into the rebuild flag
// shared by AcquireNextImage and Present. Out of date and suboptimal
// both ask for a rebuild; anything else but success is an error.
func staleness(res vk.Result) (bool, error) {
	switch res {
	case vk.Success:
		return false, nil
	case vk.ErrorOutOfDate, vk.Suboptimal:
		return true, nil
	}
	return false, vk.Error(res)
}

// AcquireNextImage hands out the index of the next presentable image,
// signaling imageReady once it may be rendered to. The bool result asks
// the caller to rebuild the swapchain.
func (s *Swapchain) AcquireNextImage(imageReady *Semaphore) (int, bool, error) {
	var index uint32
	res := vk.AcquireNextImage(s.Device.VKDevice, s.VKSwapchain, vk.MaxUint64, imageReady.VKSemaphore, vk.NullFence, &index)

	rebuild, err := staleness(res)
	if err != nil {
		return 0, false, err
	}
	return int(index), rebuild, nil
}

// Present queues the image at index for presentation after renderDone
// fires. The bool result asks for a rebuild, with the same mapping as
// AcquireNextImage.
func (s *Swapchain) Present(queue *Queue, index int, renderDone *Semaphore) (bool, error) {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderDone.VKSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.VKSwapchain},
		PImageIndices:      []uint32{uint32(index)},
	}

	return staleness(vk.QueuePresent(queue.VKQueue, &presentInfo))
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}
