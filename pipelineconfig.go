package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// VertexDescriptor describes how a vertex type lays out in a vertex
// buffer.
type VertexDescriptor interface {
	GetBindingDescription() vk.VertexInputBindingDescription
	GetAttributeDescriptions() []vk.VertexInputAttributeDescription
}

// GraphicsPipeline is a compiled graphics pipeline together with the
// layout it was built against. Viewport and scissor are dynamic, so the
// pipeline survives swapchain rebuilds at new sizes.
type GraphicsPipeline struct {
	Device     *Device
	VKPipeline vk.Pipeline
	Layout     *PipelineLayout

	ownsLayout bool
}

func (p *GraphicsPipeline) Destroy() {
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
	if p.ownsLayout && p.Layout != nil {
		p.Layout.Destroy()
	}
}

// GraphicsPipelineConfig is a utility object to ease construction of graphics pipelines
type GraphicsPipelineConfig struct {
	Device               *Device
	ShaderStages         []vk.PipelineShaderStageCreateInfo
	DescriptorSetLayouts []*DescriptorSetLayout

	// PipelineLayout to build against. When nil a layout is created
	// from DescriptorSetLayouts and owned by the resulting pipeline.
	PipelineLayout *PipelineLayout

	// Called as the last step before pipeline creation to allow for
	// additional configuration
	Configure func(config *vk.GraphicsPipelineCreateInfo)

	// PrimativeTopology see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPrimitiveTopology.html
	// defaults to VK_PRIMITIVE_TOPOLOGY_TRIANGLE_LIST
	PrimitiveTopology vk.PrimitiveTopology

	// PrimativeRestartEnable see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPipelineInputAssemblyStateCreateInfo.html
	// defaults to False
	PrimitiveRestartEnable vk.Bool32

	// PolygonMode see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPolygonMode.html
	// defaults to VK_POLYGON_MODE_FILL
	PolygonMode vk.PolygonMode

	// LineWidth of rasterized lines see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPipelineRasterizationStateCreateInfo.html
	// defaults to 1.0
	LineWidth float32

	// CullModes specifies which triangles will be culled. See https://www.khronos.org/registry/vulkan/specs/1.1/html/vkspec.html#VkCullModeFlagBits
	// Defaults to vk.CullModeBackBit
	CullMode vk.CullModeFlagBits

	// DynamicState lists extra dynamic states on top of viewport and
	// scissor, which are always dynamic. See
	// https://www.khronos.org/registry/vulkan/specs/1.1/html/vkspec.html#VkDynamicState
	DynamicState []vk.DynamicState

	// FrontFace specifies how the front face of a triangle is determined, see https://www.khronos.org/registry/vulkan/specs/1.1/html/vkspec.html#VkFrontFace
	// defaults to vk.FrontFaceCounterClockwise
	FrontFace vk.FrontFace

	// Add a pipeline color blend attachment state, by default it's assumed that all colors are set to no blending
	// see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPipelineColorBlendAttachmentState.html
	BlendAttachments []vk.PipelineColorBlendAttachmentState

	VertexInputBindingDescriptions   []vk.VertexInputBindingDescription
	VertexInputAttributeDescriptions []vk.VertexInputAttributeDescription

	toDestroy []IDestructable
}

// CreateGraphicsPipelineConfig creates a new config object
func (d *Device) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return &GraphicsPipelineConfig{
		Device:                 d,
		PrimitiveTopology:      vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
		PolygonMode:            vk.PolygonModeFill,
		LineWidth:              1.0,
		CullMode:               vk.CullModeBackBit,
		FrontFace:              vk.FrontFaceCounterClockwise,
	}
}

func (g *GraphicsPipelineConfig) manageDestroy(d IDestructable) {
	if g.toDestroy == nil {
		g.toDestroy = make([]IDestructable, 0)
	}
	g.toDestroy = append(g.toDestroy, d)
}

// Destroy releases the shader modules loaded through the config. Call it
// once every pipeline built from the config exists.
func (g *GraphicsPipelineConfig) Destroy() {
	for _, d := range g.toDestroy {
		d.Destroy()
	}
	g.toDestroy = nil
}

// AddBlendAttachment adds a new blend attachment
func (g *GraphicsPipelineConfig) AddBlendAttachment(ba vk.PipelineColorBlendAttachmentState) {
	if g.BlendAttachments == nil {
		g.BlendAttachments = make([]vk.PipelineColorBlendAttachmentState, 0)
	}
	g.BlendAttachments = append(g.BlendAttachments, ba)
}

// SetCullMode sets the cull mode
func (g *GraphicsPipelineConfig) SetCullMode(mode vk.CullModeFlagBits) *GraphicsPipelineConfig {
	g.CullMode = mode
	return g
}

// SetDynamicState adds dynamic states beyond viewport and scissor
func (g *GraphicsPipelineConfig) SetDynamicState(states ...vk.DynamicState) *GraphicsPipelineConfig {
	g.DynamicState = states
	return g
}

// AddShaderStage wraps SPIR-V code in a module and adds it as a stage
func (g *GraphicsPipelineConfig) AddShaderStage(code []byte, entryPoint string, stageType vk.ShaderStageFlagBits) error {
	shader, err := g.Device.LoadShaderModule(code)
	if err != nil {
		return err
	}
	if g.ShaderStages == nil {
		g.ShaderStages = make([]vk.PipelineShaderStageCreateInfo, 0)
	}
	g.ShaderStages = append(g.ShaderStages, shader.VKPipelineShaderStageCreateInfo(stageType, entryPoint))

	g.manageDestroy(shader)

	return nil
}

// AddShaderStageFromFile adds a shader from a specified file
func (g *GraphicsPipelineConfig) AddShaderStageFromFile(file, entryPoint string, stageType vk.ShaderStageFlagBits) error {
	shader, err := g.Device.LoadShaderModuleFromFile(file)
	if err != nil {
		return err
	}
	if g.ShaderStages == nil {
		g.ShaderStages = make([]vk.PipelineShaderStageCreateInfo, 0)
	}
	g.ShaderStages = append(g.ShaderStages, shader.VKPipelineShaderStageCreateInfo(stageType, entryPoint))

	g.manageDestroy(shader)

	return nil
}

// SetPipelineLayout sets the pipeline layout
func (g *GraphicsPipelineConfig) SetPipelineLayout(layout *PipelineLayout) *GraphicsPipelineConfig {
	g.PipelineLayout = layout
	return g
}

// SetShaderStages sets the shader stages directly
func (g *GraphicsPipelineConfig) SetShaderStages(shaderStages []vk.PipelineShaderStageCreateInfo) *GraphicsPipelineConfig {
	g.ShaderStages = shaderStages
	return g
}

// AddVertexDescriptor adds vertex descriptors based off the specified interface
func (g *GraphicsPipelineConfig) AddVertexDescriptor(v VertexDescriptor) *GraphicsPipelineConfig {
	if g.VertexInputBindingDescriptions == nil {
		g.VertexInputBindingDescriptions = make([]vk.VertexInputBindingDescription, 0)
	}
	if g.VertexInputAttributeDescriptions == nil {
		g.VertexInputAttributeDescriptions = make([]vk.VertexInputAttributeDescription, 0)
	}

	g.VertexInputBindingDescriptions = append(g.VertexInputBindingDescriptions, v.GetBindingDescription())
	g.VertexInputAttributeDescriptions = append(g.VertexInputAttributeDescriptions, v.GetAttributeDescriptions()...)

	return g
}

// AddDescriptorSetLayout adds a specific DescriptorSetLayout
func (g *GraphicsPipelineConfig) AddDescriptorSetLayout(d *DescriptorSetLayout) *GraphicsPipelineConfig {
	if g.DescriptorSetLayouts == nil {
		g.DescriptorSetLayouts = make([]*DescriptorSetLayout, 0)
	}
	g.DescriptorSetLayouts = append(g.DescriptorSetLayouts, d)
	return g
}

// VKGraphicsPipelineCreateInfo uses the provided config information to create a vulkan vk.GraphicsPipelineCreateInfo structure.
// Layout and RenderPass are left for the caller to fill in.
func (g *GraphicsPipelineConfig) VKGraphicsPipelineCreateInfo() vk.GraphicsPipelineCreateInfo {

	var vertexInputState = vk.PipelineVertexInputStateCreateInfo{}
	vertexInputState.SType = vk.StructureTypePipelineVertexInputStateCreateInfo

	vertexInputState.VertexBindingDescriptionCount = uint32(len(g.VertexInputBindingDescriptions))
	vertexInputState.PVertexBindingDescriptions = g.VertexInputBindingDescriptions
	vertexInputState.VertexAttributeDescriptionCount = uint32(len(g.VertexInputAttributeDescriptions))
	vertexInputState.PVertexAttributeDescriptions = g.VertexInputAttributeDescriptions

	var inputAssemblyState = vk.PipelineInputAssemblyStateCreateInfo{}
	inputAssemblyState.SType = vk.StructureTypePipelineInputAssemblyStateCreateInfo
	inputAssemblyState.Topology = g.PrimitiveTopology
	inputAssemblyState.PrimitiveRestartEnable = g.PrimitiveRestartEnable

	// Viewport and scissor are set per command buffer, only the counts
	// are baked into the pipeline.
	var viewportState = vk.PipelineViewportStateCreateInfo{}
	viewportState.SType = vk.StructureTypePipelineViewportStateCreateInfo
	viewportState.ViewportCount = 1
	viewportState.ScissorCount = 1

	var rasterState = vk.PipelineRasterizationStateCreateInfo{}
	rasterState.SType = vk.StructureTypePipelineRasterizationStateCreateInfo
	rasterState.DepthClampEnable = vk.False
	rasterState.RasterizerDiscardEnable = vk.False
	rasterState.PolygonMode = g.PolygonMode
	rasterState.LineWidth = g.LineWidth
	rasterState.CullMode = vk.CullModeFlags(g.CullMode)

	rasterState.FrontFace = g.FrontFace
	rasterState.DepthBiasEnable = vk.False

	var multisampleState = vk.PipelineMultisampleStateCreateInfo{}
	multisampleState.SType = vk.StructureTypePipelineMultisampleStateCreateInfo
	multisampleState.SampleShadingEnable = vk.False
	multisampleState.RasterizationSamples = vk.SampleCount1Bit

	blendAttachments := []vk.PipelineColorBlendAttachmentState{}
	if g.BlendAttachments == nil {
		blendAttachments = []vk.PipelineColorBlendAttachmentState{{
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
			BlendEnable:    vk.False,
		}}
	} else {
		blendAttachments = g.BlendAttachments
	}

	var colorBlendState = vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	dynamicStates := append([]vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}, g.DynamicState...)

	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		PDynamicStates:    dynamicStates,
		DynamicStateCount: uint32(len(dynamicStates)),
	}

	return vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.ShaderStages)),
		PStages:             g.ShaderStages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		PDynamicState:       &dynamicState,
		Subpass:             0,
	}
}

// CreateGraphicsPipeline compiles the config against the render pass.
func (g *GraphicsPipelineConfig) CreateGraphicsPipeline(renderPass *RenderPass) (*GraphicsPipeline, error) {
	layout := g.PipelineLayout
	ownsLayout := false

	if layout == nil {
		var err error
		layout, err = g.Device.CreatePipelineLayout(g.DescriptorSetLayouts...)
		if err != nil {
			return nil, err
		}
		ownsLayout = true
	}

	config := g.VKGraphicsPipelineCreateInfo()
	config.Layout = layout.VKPipelineLayout
	config.RenderPass = renderPass.VKRenderPass

	if g.Configure != nil {
		g.Configure(&config)
	}

	pipelines := make([]vk.Pipeline, 1)
	err := vk.Error(vk.CreateGraphicsPipelines(g.Device.VKDevice, vk.PipelineCache(vk.NullHandle),
		1,
		[]vk.GraphicsPipelineCreateInfo{config},
		nil,
		pipelines))

	if err != nil {
		if ownsLayout {
			layout.Destroy()
		}
		return nil, err
	}

	var ret GraphicsPipeline
	ret.Device = g.Device
	ret.VKPipeline = pipelines[0]
	ret.Layout = layout
	ret.ownsLayout = ownsLayout

	return &ret, nil
}
