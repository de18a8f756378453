package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffers describe a sequence of commands that will be executed
// upon being sent to a device queue. Not all available vulkan commands
// are wrapped by this package. It is expected that the calling application
// must call the native vulkan command APIs.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// ResetAndRelease will reset this commandbuffer and release the associated resources
func (c *CommandBuffer) ResetAndRelease() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit)))
}

// Reset this command buffer
func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	beginInfo.Flags = 0
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// BeginOneTime begins capturing work for this command buffer, with the stipulation that it will only be used once (instead of put back in the pool of command buffers)
func (c *CommandBuffer) BeginOneTime() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	beginInfo.Flags = vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}

func (c *CommandBuffer) CmdBindGraphicsPipeline(p *GraphicsPipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, p.VKPipeline)
}

func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet) {

	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}

	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(descriptorSets)), sets, 0, nil)
}

// CmdSetViewportScissor sets both dynamic states to cover the given
// extent. Pipelines built by this package leave viewport and scissor
// dynamic, so every frame must record this before drawing.
func (c *CommandBuffer) CmdSetViewportScissor(extent vk.Extent2D) {
	viewport := vk.Viewport{
		X: 0, Y: 0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
	vk.CmdSetViewport(c.VKCommandBuffer, 0, 1, []vk.Viewport{viewport})

	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}
	vk.CmdSetScissor(c.VKCommandBuffer, 0, 1, []vk.Rect2D{scissor})
}

func (c *CommandBuffer) CmdBeginRenderPass(renderPass *RenderPass, framebuffer vk.Framebuffer, extent vk.Extent2D, clearValues []vk.ClearValue) {
	renderPassBeginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  renderPass.VKRenderPass,
		Framebuffer: framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(c.VKCommandBuffer, &renderPassBeginInfo, vk.SubpassContentsInline)
}

func (c *CommandBuffer) CmdEndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) CmdBindVertexBuffer(b *ImmutableBuffer) {
	vk.CmdBindVertexBuffers(c.VKCommandBuffer, 0, 1, []vk.Buffer{b.VKBuffer()}, []vk.DeviceSize{0})
}

func (c *CommandBuffer) CmdBindIndexBuffer(b *ImmutableBuffer, indexType vk.IndexType) {
	vk.CmdBindIndexBuffer(c.VKCommandBuffer, b.VKBuffer(), vk.DeviceSize(0), indexType)
}

func (c *CommandBuffer) CmdDraw(vertexCount, instanceCount, firstVertex, firstInstance int) {
	vk.CmdDraw(c.VKCommandBuffer, uint32(vertexCount), uint32(instanceCount), uint32(firstVertex), uint32(firstInstance))
}

func (c *CommandBuffer) CmdDrawIndexed(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance int) {
	vk.CmdDrawIndexed(c.VKCommandBuffer, uint32(indexCount), uint32(instanceCount), uint32(firstIndex), int32(vertexOffset), uint32(firstInstance))
}

// CmdCopyBuffer records a full copy of sizeInBytes from src to dst,
// both starting at offset zero.
func (c *CommandBuffer) CmdCopyBuffer(src, dst *Buffer, sizeInBytes int) {
	region := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(sizeInBytes),
	}
	vk.CmdCopyBuffer(c.VKCommandBuffer, src.VKBuffer, dst.VKBuffer, 1, []vk.BufferCopy{region})
}
