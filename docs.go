/*
Package vkr implements the core of a real time renderer on top of the Vulkan
graphics framework for go. Vulkan gives applications a very direct view of the
GPU, which is what makes it fast, but it also means everything OpenGL used to
quietly manage - device selection, image presentation, synchronization, memory
- is now the application's problem.

This package takes over the parts of that problem which look the same in
nearly every renderer, while leaving the native handles reachable so
applications aren't limited by what the package chose to wrap. Every wrapper
object exposes its native Vulkan structures in fields prefixed with 'VK', so
dropping down to the raw API is always possible.

What the package manages

Device selection: physical devices are filtered for what presentation
actually requires (graphics and present queues on the surface, the swapchain
extension, surface formats and present modes) and the survivors are ranked, by
default preferring discrete hardware. Applications can replace the ranking
with their own ScoreFunc without redoing the filtering.

The swapchain: surface format and present mode negotiation, extent selection,
and the rebuild dance when the window resizes or the surface reports itself
out of date. Rebuilds are detected from both image acquisition and
presentation, and handled inside the frame loop so applications mostly don't
notice them.

Frame scheduling: the renderer keeps a small fixed ring of frame slots, each
with its own command buffer, semaphores and fence, so the CPU can record the
next frame while the GPU works on the previous one. The slot index is handed
to the application's Record callback for addressing per frame resources such
as uniform buffers.

Resource upload: immutable buffers and images are uploaded once through a
staging buffer and live in device local memory; mapped buffers stay
persistently mapped in host visible memory for data that changes every frame.
Memory types are chosen by matching the device's advertised types against the
properties a resource needs.

Native Vulkan terms

	Instance	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		the logical device, target of most of the vulkan apis
	Queue		a queue which work (command buffers) may be submitted to
	Surface		the thing the window system gives us to present into
	Swapchain	a grouping of images which are used to display graphical data
	RenderPass	a description of the attachments a frame renders into
	Pipeline	a description of how to process data on the GPU
	DeviceMemory	an allocation of memory on the host or device for use by buffers and images
	Buffer		a description of some bit of data (vertex, index, uniform or other)
	Image		a description of some image
	ImageView	a way of describing how an image is utilized or viewed
	DescriptorSet	a mapping of data for use by shaders
	DescriptorSetLayout	a description of what data is in the descriptor set

A graphics application built with this package usually runs through a
sequence like:

	1. Initialize the loader (InitializeForGLFW or InitializeHeadless)
	2. Create a Renderer from a surface source, which picks the device and
	   builds the swapchain, render pass, framebuffers and frame slots
	3. Upload immutable resources (vertex and index buffers, textures)
	   through their Create functions, which stage and copy them to device
	   local memory
	4. Create mapped buffers for anything rewritten per frame
	5. Describe shader data with descriptor set layouts, allocate and write
	   descriptor sets
	6. Configure and create a graphics pipeline against the renderer's
	   render pass
	7. Set the renderer's Record callback to bind the pipeline and issue
	   draws
	8. Call Draw once per frame until the window closes
	9. Destroy application resources, then the renderer

Teardown runs in reverse dependency order and every Destroy tolerates being
called on partially constructed objects, so error paths during startup can
simply destroy what exists.
*/
package vkr
