package vkr

import (
	"fmt"
	"os"

	vk "github.com/vulkan-go/vulkan"
)

type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

// LoadShaderModule wraps SPIR-V code in a shader module. The code must
// be a non empty whole number of 32 bit words.
func (d *Device) LoadShaderModule(code []byte) (*ShaderModule, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShaderAlignment, len(code))
	}

	var module vk.ShaderModule
	err := vk.Error(vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module))

	if err != nil {
		return nil, err
	}

	var ret ShaderModule
	ret.VKShaderModule = module
	ret.Device = d
	return &ret, nil
}

func (d *Device) LoadShaderModuleFromFile(file string) (*ShaderModule, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	module, err := d.LoadShaderModule(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	module.Description = file

	return module, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	var shaderStageCreateInfo = vk.PipelineShaderStageCreateInfo{}
	shaderStageCreateInfo.SType = vk.StructureTypePipelineShaderStageCreateInfo
	shaderStageCreateInfo.Stage = stage
	shaderStageCreateInfo.Module = s.VKShaderModule
	shaderStageCreateInfo.PName = safeString(entryPoint)
	return shaderStageCreateInfo
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}
