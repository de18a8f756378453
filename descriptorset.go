package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet is a binding of resources to a descriptor, per a specific DescriptorSetLayout
type DescriptorSet struct {
	Device                *Device
	DescriptorPool        *DescriptorPool
	VKDescriptorSet       vk.DescriptorSet
	VKWriteDescriptorSets []vk.WriteDescriptorSet
}

func (d *Device) NewDescriptorSet() *DescriptorSet {
	return &DescriptorSet{Device: d}
}

// AddBufferInfo queues a buffer write for the given binding
func (du *DescriptorSet) AddBufferInfo(dstBinding int, dtype vk.DescriptorType, info vk.DescriptorBufferInfo) {
	var writeDescriptorSet = vk.WriteDescriptorSet{}
	writeDescriptorSet.SType = vk.StructureTypeWriteDescriptorSet
	writeDescriptorSet.DstBinding = uint32(dstBinding)
	writeDescriptorSet.DescriptorCount = 1
	writeDescriptorSet.DescriptorType = dtype
	writeDescriptorSet.PBufferInfo = []vk.DescriptorBufferInfo{info}

	if du.VKWriteDescriptorSets == nil {
		du.VKWriteDescriptorSets = make([]vk.WriteDescriptorSet, 0)
	}
	du.VKWriteDescriptorSets = append(du.VKWriteDescriptorSets, writeDescriptorSet)
}

// AddBuffer adds a specific buffer to this descriptor set
func (du *DescriptorSet) AddBuffer(dstBinding int, dtype vk.DescriptorType, b *Buffer, offset int) {
	du.AddBufferInfo(dstBinding, dtype, b.DSInfo(offset))
}

// AddImageInfo queues an image write for the given binding
func (du *DescriptorSet) AddImageInfo(dstBinding int, dtype vk.DescriptorType, info vk.DescriptorImageInfo) {
	var writeDescriptorSet = vk.WriteDescriptorSet{}
	writeDescriptorSet.SType = vk.StructureTypeWriteDescriptorSet
	writeDescriptorSet.DstBinding = uint32(dstBinding)
	writeDescriptorSet.DescriptorCount = 1
	writeDescriptorSet.DescriptorType = dtype
	writeDescriptorSet.PImageInfo = []vk.DescriptorImageInfo{info}

	if du.VKWriteDescriptorSets == nil {
		du.VKWriteDescriptorSets = make([]vk.WriteDescriptorSet, 0)
	}
	du.VKWriteDescriptorSets = append(du.VKWriteDescriptorSets, writeDescriptorSet)
}

// AddCombinedImageSampler adds an image layout, image view and sampler to support displaying a texture
func (du *DescriptorSet) AddCombinedImageSampler(dstBinding int, layout vk.ImageLayout, imageView vk.ImageView, sampler vk.Sampler) {
	du.AddImageInfo(dstBinding, vk.DescriptorTypeCombinedImageSampler, vk.DescriptorImageInfo{
		ImageView:   imageView,
		ImageLayout: layout,
		Sampler:     sampler,
	})
}

// Write applies the queued writes to the descriptor set
func (du *DescriptorSet) Write() {
	for i := range du.VKWriteDescriptorSets {
		du.VKWriteDescriptorSets[i].DstSet = du.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(du.Device.VKDevice, uint32(len(du.VKWriteDescriptorSets)), du.VKWriteDescriptorSets, 0, nil)
}
