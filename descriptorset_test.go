package vkr

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestDescriptorSetLayoutBindings(t *testing.T) {
	layout := (&Device{}).NewDescriptorSetLayout()
	layout.AddUniformBuffer(0, vk.ShaderStageVertexBit)
	layout.AddCombinedImageSampler(1, vk.ShaderStageFragmentBit)

	if len(layout.VKDescriptorSetLayoutBindings) != 2 {
		t.Fatalf("got %d bindings", len(layout.VKDescriptorSetLayoutBindings))
	}

	ubo := layout.VKDescriptorSetLayoutBindings[0]
	if ubo.Binding != 0 || ubo.DescriptorType != vk.DescriptorTypeUniformBuffer {
		t.Errorf("uniform binding %v %v", ubo.Binding, ubo.DescriptorType)
	}
	if ubo.DescriptorCount != 1 {
		t.Errorf("uniform descriptor count %d", ubo.DescriptorCount)
	}
	if ubo.StageFlags != vk.ShaderStageFlags(vk.ShaderStageVertexBit) {
		t.Errorf("uniform stages %x", ubo.StageFlags)
	}

	tex := layout.VKDescriptorSetLayoutBindings[1]
	if tex.Binding != 1 || tex.DescriptorType != vk.DescriptorTypeCombinedImageSampler {
		t.Errorf("sampler binding %v %v", tex.Binding, tex.DescriptorType)
	}
	if tex.StageFlags != vk.ShaderStageFlags(vk.ShaderStageFragmentBit) {
		t.Errorf("sampler stages %x", tex.StageFlags)
	}
}

func TestDescriptorSetQueuedWrites(t *testing.T) {
	ds := (&Device{}).NewDescriptorSet()

	ds.AddBufferInfo(0, vk.DescriptorTypeUniformBuffer, vk.DescriptorBufferInfo{
		Offset: 0,
		Range:  64,
	})
	ds.AddCombinedImageSampler(1, vk.ImageLayoutShaderReadOnlyOptimal, vk.NullImageView, vk.NullSampler)

	if len(ds.VKWriteDescriptorSets) != 2 {
		t.Fatalf("got %d writes", len(ds.VKWriteDescriptorSets))
	}

	w := ds.VKWriteDescriptorSets[0]
	if w.DstBinding != 0 || w.DescriptorType != vk.DescriptorTypeUniformBuffer {
		t.Errorf("buffer write %v %v", w.DstBinding, w.DescriptorType)
	}
	if w.DescriptorCount != 1 || len(w.PBufferInfo) != 1 {
		t.Error("buffer write must carry exactly one descriptor")
	}
	if w.PBufferInfo[0].Range != 64 {
		t.Errorf("range %d", w.PBufferInfo[0].Range)
	}

	w = ds.VKWriteDescriptorSets[1]
	if w.DstBinding != 1 || w.DescriptorType != vk.DescriptorTypeCombinedImageSampler {
		t.Errorf("image write %v %v", w.DstBinding, w.DescriptorType)
	}
	if len(w.PImageInfo) != 1 {
		t.Fatal("image write must carry exactly one descriptor")
	}
	if w.PImageInfo[0].ImageLayout != vk.ImageLayoutShaderReadOnlyOptimal {
		t.Errorf("image layout %v", w.PImageInfo[0].ImageLayout)
	}
}
