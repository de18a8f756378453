package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type VKPresentModes []vk.PresentMode

type VKSurfaceFormats []vk.SurfaceFormat

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) GetSurfacePresentModes(surface vk.Surface) (VKPresentModes, error) {
	var count uint32
	err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	f := make([]vk.PresentMode, count)
	err = vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, f))
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (p *PhysicalDevice) GetSurfaceFormats(surface vk.Surface) (VKSurfaceFormats, error) {
	var count uint32
	err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	f := make([]vk.SurfaceFormat, count)
	err = vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, f))
	if err != nil {
		return nil, err
	}

	return f, nil
}

// GetSurfaceCapabilities queries the surface capabilities and leaves
// every field, including the nested extents, readable.
func (p *PhysicalDevice) GetSurfaceCapabilities(surface vk.Surface) (*vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps))
	if err != nil {
		return nil, err
	}

	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	return &caps, err
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var queueFamilyCount uint32

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, queueFamilyCount)

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, queues)

	ret := make([]*QueueFamily, queueFamilyCount)
	for i, queue := range queues {

		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}

		ret[i].VKQueueFamilyProperties.Deref()

	}

	return ret, nil
}

type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string

	// EnabledFeatures overrides the default feature set. When nil only
	// anisotropic sampling is enabled, which device selection has
	// already verified is present.
	EnabledFeatures *vk.PhysicalDeviceFeatures
}

func (p *PhysicalDevice) CreateLogicalDeviceWithOptions(qfs QueueFamilySlice, options *CreateDeviceOptions) (*Device, error) {

	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(qfs))
	for j, q := range qfs {

		queueCreateInfo := vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Index),
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}

		queueCreateInfos[j] = queueCreateInfo

	}

	deviceFeatures := vk.PhysicalDeviceFeatures{
		SamplerAnisotropy: vk.True,
	}
	if options != nil && options.EnabledFeatures != nil {
		deviceFeatures = *options.EnabledFeatures
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(qfs)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	if options != nil {
		if options.EnabledExtensions != nil {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if options.EnabledLayers != nil {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device

	err := vk.Error(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice))
	if err != nil {
		return nil, err
	}

	var device Device
	device.PhysicalDevice = p
	device.VKDevice = ldevice

	return &device, nil
}

func (p *PhysicalDevice) CreateLogicalDevice(qfs QueueFamilySlice) (*Device, error) {
	return p.CreateLogicalDeviceWithOptions(qfs, nil)
}

func (p *PhysicalDevice) VKPhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var deviceFeatures vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &deviceFeatures)
	return deviceFeatures
}

func (p *PhysicalDevice) MemoryTypes() []vk.MemoryType {
	mp := p.VKPhysicalDeviceMemoryProperties()
	mp.Deref()

	ret := make([]vk.MemoryType, 0)

	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		mt.Deref()
		ret = append(ret, mt)
	}
	return ret
}

func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var memoryProperties vk.PhysicalDeviceMemoryProperties

	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	return memoryProperties
}

// FindMemoryType returns the index of the first memory type that is
// present in memoryTypeBits and carries at least the requested property
// flags. See the documentation of VkPhysicalDeviceMemoryProperties for
// how this search is meant to work.
func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	memoryProperties := p.VKPhysicalDeviceMemoryProperties()
	mp := &memoryProperties
	mp.Deref()
	return findMemoryType(mp, memoryTypeBits, properties)
}

func findMemoryType(mp *vk.PhysicalDeviceMemoryProperties, memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]

		mt.Deref()
		if memoryTypeBits&(1<<i) != 0 &&
			vk.MemoryPropertyFlagBits(mt.PropertyFlags)&properties == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: type bits 0x%x properties 0x%x", ErrNoSuitableMemoryType, memoryTypeBits, properties)
}

func (p *PhysicalDevice) SupportedExtensions() ([]vk.ExtensionProperties, error) {
	var count uint32
	err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil))
	if err != nil {
		return nil, err
	}

	ext := make([]vk.ExtensionProperties, count)

	err = vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, ext))
	if err != nil {
		return nil, err
	}
	return ext, nil
}

// SupportedExtensionNames is SupportedExtensions flattened to plain
// strings for containment checks.
func (p *PhysicalDevice) SupportedExtensionNames() ([]string, error) {
	exts, err := p.SupportedExtensions()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}
