package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type Semaphore struct {
	Device      *Device
	VKSemaphore vk.Semaphore
}

//VKCreateSemaphore creates a native vulkan semaphore object
func (d *Device) VKCreateSemaphore() (vk.Semaphore, error) {
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var sema vk.Semaphore

	err := vk.Error(vk.CreateSemaphore(d.VKDevice, &semaphoreCreateInfo, nil, &sema))

	return sema, err
}

func (d *Device) VKDestroySemaphore(s vk.Semaphore) {
	vk.DestroySemaphore(d.VKDevice, s, nil)
}

func (d *Device) CreateSemaphore() (*Semaphore, error) {
	sema, err := d.VKCreateSemaphore()
	if err != nil {
		return nil, err
	}

	var ret Semaphore
	ret.Device = d
	ret.VKSemaphore = sema
	return &ret, nil
}

func (s *Semaphore) Destroy() {
	s.Device.VKDestroySemaphore(s.VKSemaphore)
}
