package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type RenderPass struct {
	Device       *Device
	VKRenderPass vk.RenderPass
}

// presentRenderPassCreateInfo describes a single subpass over one color
// attachment in the given format. The attachment is cleared on load,
// stored, and handed to the presentation engine in the present source
// layout. The external dependency delays the clear until the previous
// frame's color output has drained.
func presentRenderPassCreateInfo(format vk.Format) vk.RenderPassCreateInfo {
	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachments,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

// CreatePresentRenderPass builds the render pass frames draw into. The
// format must match the swapchain. Because only the attachment format
// feeds into it, the pass survives swapchain rebuilds at new sizes.
// The optional configure callback may adjust the create info before
// the pass is created.
func (d *Device) CreatePresentRenderPass(format vk.Format, configure func(*vk.RenderPassCreateInfo)) (*RenderPass, error) {
	renderPassCreateInfo := presentRenderPassCreateInfo(format)

	if configure != nil {
		configure(&renderPassCreateInfo)
	}

	var renderPass vk.RenderPass

	err := vk.Error(vk.CreateRenderPass(d.VKDevice, &renderPassCreateInfo, nil, &renderPass))
	if err != nil {
		return nil, err
	}

	var ret RenderPass
	ret.Device = d
	ret.VKRenderPass = renderPass

	return &ret, nil
}

// CreateFramebuffers makes one framebuffer per view, in view order, each
// binding that view as the pass's color attachment.
func (r *RenderPass) CreateFramebuffers(views []*ImageView, extent vk.Extent2D) ([]vk.Framebuffer, error) {
	framebuffers := make([]vk.Framebuffer, len(views))
	for i, view := range views {
		attachments := []vk.ImageView{
			view.VKImageView,
		}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      r.VKRenderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           extent.Width,
			Height:          extent.Height,
		}
		err := vk.Error(vk.CreateFramebuffer(r.Device.VKDevice, &fbCreateInfo, nil, &framebuffers[i]))
		if err != nil {
			for _, fb := range framebuffers[:i] {
				vk.DestroyFramebuffer(r.Device.VKDevice, fb, nil)
			}
			return nil, err
		}
	}
	return framebuffers, nil
}

// DestroyFramebuffers releases framebuffers made by CreateFramebuffers.
func (r *RenderPass) DestroyFramebuffers(framebuffers []vk.Framebuffer) {
	for i := range framebuffers {
		vk.DestroyFramebuffer(r.Device.VKDevice, framebuffers[i], nil)
	}
}

func (r *RenderPass) Destroy() {
	vk.DestroyRenderPass(r.Device.VKDevice, r.VKRenderPass, nil)
	r.VKRenderPass = vk.NullRenderPass
}
