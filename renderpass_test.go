package vkr

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestPresentRenderPassCreateInfo(t *testing.T) {
	info := presentRenderPassCreateInfo(vk.FormatB8g8r8a8Srgb)

	if info.AttachmentCount != 1 {
		t.Fatalf("attachment count %d", info.AttachmentCount)
	}

	at := info.PAttachments[0]
	if at.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("format %v", at.Format)
	}
	if at.Samples != vk.SampleCount1Bit {
		t.Errorf("samples %v", at.Samples)
	}
	if at.LoadOp != vk.AttachmentLoadOpClear || at.StoreOp != vk.AttachmentStoreOpStore {
		t.Error("color contents must be cleared on load and kept on store")
	}
	if at.StencilLoadOp != vk.AttachmentLoadOpDontCare || at.StencilStoreOp != vk.AttachmentStoreOpDontCare {
		t.Error("stencil ops must not constrain the driver")
	}
	if at.InitialLayout != vk.ImageLayoutUndefined {
		t.Errorf("initial layout %v", at.InitialLayout)
	}
	if at.FinalLayout != vk.ImageLayoutPresentSrc {
		t.Errorf("final layout %v", at.FinalLayout)
	}
}

func TestPresentRenderPassSubpass(t *testing.T) {
	info := presentRenderPassCreateInfo(vk.FormatB8g8r8a8Srgb)

	if info.SubpassCount != 1 {
		t.Fatalf("subpass count %d", info.SubpassCount)
	}

	sp := info.PSubpasses[0]
	if sp.PipelineBindPoint != vk.PipelineBindPointGraphics {
		t.Errorf("bind point %v", sp.PipelineBindPoint)
	}
	if sp.ColorAttachmentCount != 1 {
		t.Fatalf("color attachment count %d", sp.ColorAttachmentCount)
	}
	ref := sp.PColorAttachments[0]
	if ref.Attachment != 0 || ref.Layout != vk.ImageLayoutColorAttachmentOptimal {
		t.Errorf("attachment reference %v %v", ref.Attachment, ref.Layout)
	}
}

func TestPresentRenderPassDependency(t *testing.T) {
	info := presentRenderPassCreateInfo(vk.FormatB8g8r8a8Srgb)

	if info.DependencyCount != 1 {
		t.Fatalf("dependency count %d", info.DependencyCount)
	}

	dep := info.PDependencies[0]
	if dep.SrcSubpass != vk.SubpassExternal || dep.DstSubpass != 0 {
		t.Error("dependency must run from outside the pass into subpass 0")
	}

	colorOutput := vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
	if dep.SrcStageMask != colorOutput || dep.DstStageMask != colorOutput {
		t.Error("both sides must meet at color attachment output")
	}
	if dep.SrcAccessMask != 0 {
		t.Errorf("src access %x", dep.SrcAccessMask)
	}
	if dep.DstAccessMask != vk.AccessFlags(vk.AccessColorAttachmentWriteBit) {
		t.Errorf("dst access %x", dep.DstAccessMask)
	}
}
