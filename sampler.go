package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type Sampler struct {
	Device    *Device
	VKSampler vk.Sampler
}

// CreateSampler makes a linear filtering, repeating sampler with
// anisotropy set to the device limit.
func (d *Device) CreateSampler() (*Sampler, error) {
	properties := d.PhysicalDevice.VKPhysicalDeviceProperties
	properties.Deref()
	properties.Limits.Deref()

	var samplerInfo = vk.SamplerCreateInfo{}
	samplerInfo.SType = vk.StructureTypeSamplerCreateInfo
	samplerInfo.MagFilter = vk.FilterLinear
	samplerInfo.MinFilter = vk.FilterLinear
	samplerInfo.AddressModeU = vk.SamplerAddressModeRepeat
	samplerInfo.AddressModeV = vk.SamplerAddressModeRepeat
	samplerInfo.AddressModeW = vk.SamplerAddressModeRepeat
	samplerInfo.AnisotropyEnable = vk.True
	samplerInfo.MaxAnisotropy = properties.Limits.MaxSamplerAnisotropy
	samplerInfo.BorderColor = vk.BorderColorIntOpaqueBlack
	samplerInfo.UnnormalizedCoordinates = vk.False
	samplerInfo.CompareEnable = vk.False
	samplerInfo.CompareOp = vk.CompareOpAlways
	samplerInfo.MipmapMode = vk.SamplerMipmapModeLinear
	samplerInfo.MipLodBias = 0
	samplerInfo.MinLod = 0
	samplerInfo.MaxLod = 0

	var sampler vk.Sampler

	err := vk.Error(vk.CreateSampler(d.VKDevice, &samplerInfo, nil, &sampler))
	if err != nil {
		return nil, err
	}

	var ret Sampler

	ret.Device = d
	ret.VKSampler = sampler

	return &ret, nil
}

func (s *Sampler) Destroy() {
	vk.DestroySampler(s.Device.VKDevice, s.VKSampler, nil)
}
