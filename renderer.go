package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// SurfaceSource produces the presentation surface a renderer draws to.
// Window layers implement it, which keeps the renderer independent of
// any particular windowing library.
type SurfaceSource interface {
	// InstanceExtensions lists the instance extensions surface
	// creation needs.
	InstanceExtensions() []string

	// CreateSurface makes a surface on the given instance.
	CreateSurface(instance vk.Instance) (vk.Surface, error)
}

// DefaultFramesInFlight is the number of scheduler slots a renderer
// creates when the options leave it unset.
const DefaultFramesInFlight = 2

type RendererOptions struct {
	// AppName is reported to the driver.
	AppName string

	// AppVersion is reported to the driver.
	AppVersion Version

	// Debug turns on the validation layer and routes its reports to
	// the package logger.
	Debug bool

	// Score overrides device ranking, see ScoreFunc.
	Score ScoreFunc

	// DeviceExtensions overrides DefaultDeviceExtensions for both
	// device selection and device creation.
	DeviceExtensions []string

	// FramesInFlight is the wanted number of scheduler slots. It is
	// clamped to what the surface supports and defaults to
	// DefaultFramesInFlight.
	FramesInFlight int

	// PresentModes overrides the present mode preference order when
	// non-empty. The override also applies to rebuilds.
	PresentModes []vk.PresentMode

	// ClearColor is the RGBA color the attachment is cleared to at the
	// start of every frame. Defaults to opaque black.
	ClearColor []float32

	// ConfigureRenderPass may adjust the render pass create info
	// before the pass is created.
	ConfigureRenderPass func(*vk.RenderPassCreateInfo)
}

// Renderer owns the whole presentation path: instance, device,
// swapchain, render pass, framebuffers and the frame loop cycling
// through them. Applications set Record, build their pipelines against
// RenderPass, and call Draw once per frame.
type Renderer struct {
	Instance  *Instance
	Device    *Device
	VKSurface vk.Surface

	Swapchain  *Swapchain
	RenderPass *RenderPass

	// Record is called once per frame inside the render pass to record
	// draw commands. frame is the scheduler slot index, which addresses
	// per frame resources such as uniform buffers.
	Record func(cmd *CommandBuffer, frame int)

	size         vk.Extent2D
	presentModes []vk.PresentMode

	views        []*ImageView
	framebuffers []vk.Framebuffer

	slots []*FrameSlot
	loop  *FrameLoop

	clearValues   []vk.ClearValue
	rebuildNeeded bool
}

// NewRenderer brings up the full rendering stack on the given surface
// source. The loader must already be initialized, see the window
// layer's initializer or InitializeHeadless. size is the wanted
// framebuffer size in pixels and only applies when the surface does
// not dictate its own.
func NewRenderer(source SurfaceSource, size vk.Extent2D, options *RendererOptions) (*Renderer, error) {
	if options == nil {
		options = &RendererOptions{}
	}

	framesInFlight := options.FramesInFlight
	if framesInFlight == 0 {
		framesInFlight = DefaultFramesInFlight
	}

	clearColor := options.ClearColor
	if clearColor == nil {
		clearColor = []float32{0, 0, 0, 1}
	}

	r := &Renderer{
		size:         size,
		presentModes: options.PresentModes,
		clearValues:  []vk.ClearValue{vk.NewClearValue(clearColor)},
	}

	app := &App{Name: options.AppName, Version: options.AppVersion}
	app.EnableExtensions(source.InstanceExtensions())

	if options.Debug {
		if err := app.EnableDebugging(); err != nil {
			return nil, err
		}
	}

	instance, err := app.CreateInstance()
	if err != nil {
		return nil, err
	}
	r.Instance = instance

	if options.Debug {
		if err := instance.UseDefaultDebugCallback(); err != nil {
			r.Destroy()
			return nil, err
		}
	}

	r.VKSurface, err = source.CreateSurface(instance.VKInstance)
	if err != nil {
		r.Destroy()
		return nil, err
	}

	candidate, err := PickDevice(instance, r.VKSurface, &PickDeviceOptions{
		RequiredExtensions: options.DeviceExtensions,
		Score:              options.Score,
	})
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.Device, err = candidate.CreateDevice(&CreateDeviceOptions{
		EnabledExtensions: options.DeviceExtensions,
	})
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.Swapchain, err = r.Device.CreateSwapchain(r.VKSurface, r.Device.Queue, r.Device.Queue, &CreateSwapchainOptions{
		Size:         size,
		PresentModes: r.presentModes,
	})
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.RenderPass, err = r.Device.CreatePresentRenderPass(r.Swapchain.Format, options.ConfigureRenderPass)
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.views, err = r.Swapchain.CreateImageViews()
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.framebuffers, err = r.RenderPass.CreateFramebuffers(r.views, r.Swapchain.Extent)
	if err != nil {
		r.Destroy()
		return nil, err
	}

	caps, err := r.Device.PhysicalDevice.GetSurfaceCapabilities(r.VKSurface)
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.slots, err = r.Device.CreateFrameSlots(clampFramesInFlight(framesInFlight, caps))
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.loop = NewFrameLoop(r, r.slots)

	return r, nil
}

// Draw runs one frame. See FrameLoop.Draw for the rebuild behavior.
func (r *Renderer) Draw() error {
	return r.loop.Draw()
}

// Resize records the new framebuffer size and schedules a swapchain
// rebuild before the next frame's image acquisition.
func (r *Renderer) Resize(size vk.Extent2D) {
	r.size = size
	r.rebuildNeeded = true
}

// Extent returns the current swapchain extent.
func (r *Renderer) Extent() vk.Extent2D {
	return r.Swapchain.Extent
}

// FramesInFlight returns the number of scheduler slots.
func (r *Renderer) FramesInFlight() int {
	return len(r.slots)
}

// Frame returns the slot index the next Draw will use.
func (r *Renderer) Frame() int {
	return r.loop.Frame()
}

// Slots returns the frame slots in index order.
func (r *Renderer) Slots() []*FrameSlot {
	return r.slots
}

// WaitSlot implements FrameBackend. It blocks until the slot's last
// submission retired, then resets the fence for reuse.
func (r *Renderer) WaitSlot(slot *FrameSlot) error {
	if err := slot.InFlight.Wait(NoTimeout); err != nil {
		return err
	}
	return slot.InFlight.Reset()
}

// Acquire implements FrameBackend. A pending resize reports as a
// rebuild before the swapchain is asked for an image.
func (r *Renderer) Acquire(slot *FrameSlot) (int, bool, error) {
	if r.rebuildNeeded {
		return 0, true, nil
	}
	return r.Swapchain.AcquireNextImage(slot.ImageReady)
}

// Submit implements FrameBackend. It records the frame into the slot's
// command buffer and submits it, waiting for the image at the color
// output stage, signaling the slot's semaphore for present and the
// slot's fence for the CPU.
func (r *Renderer) Submit(slot *FrameSlot, index int) error {
	cmd := slot.Cmd

	if err := cmd.Reset(); err != nil {
		return err
	}
	if err := cmd.Begin(); err != nil {
		return err
	}

	cmd.CmdSetViewportScissor(r.Swapchain.Extent)
	cmd.CmdBeginRenderPass(r.RenderPass, r.framebuffers[index], r.Swapchain.Extent, r.clearValues)

	if r.Record != nil {
		r.Record(cmd, slot.Index)
	}

	cmd.CmdEndRenderPass()

	if err := cmd.End(); err != nil {
		return err
	}

	return r.Device.Queue.SubmitWithOptions(&SubmitOptions{
		WaitSemaphores:   []*Semaphore{slot.ImageReady},
		WaitDstStageMask: []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		SignalSemaphores: []*Semaphore{slot.RenderDone},
		Fence:            slot.InFlight,
	}, cmd)
}

// Present implements FrameBackend.
func (r *Renderer) Present(slot *FrameSlot, index int) (bool, error) {
	return r.Swapchain.Present(r.Device.Queue, index, slot.RenderDone)
}

// Rebuild implements FrameBackend. It tears down the swapchain and its
// framebuffers and remakes them at the current size. The render pass
// only depends on the surface format, so it survives, as do pipelines
// built against it.
func (r *Renderer) Rebuild() error {
	r.Device.WaitIdle()

	r.RenderPass.DestroyFramebuffers(r.framebuffers)
	r.framebuffers = nil
	for _, v := range r.views {
		v.Destroy()
	}
	r.views = nil
	r.Swapchain.Destroy()

	swapchain, err := r.Device.CreateSwapchain(r.VKSurface, r.Device.Queue, r.Device.Queue, &CreateSwapchainOptions{
		Size:         r.size,
		PresentModes: r.presentModes,
	})
	if err != nil {
		return err
	}
	r.Swapchain = swapchain

	if r.views, err = swapchain.CreateImageViews(); err != nil {
		return err
	}
	if r.framebuffers, err = r.RenderPass.CreateFramebuffers(r.views, swapchain.Extent); err != nil {
		return err
	}

	r.rebuildNeeded = false

	logger().Info("rebuilt swapchain",
		"width", swapchain.Extent.Width,
		"height", swapchain.Extent.Height)

	return nil
}

type teardownStep struct {
	name string
	run  func()
}

// teardown lists the destruction walk in execution order, one step per
// node of the ownership tree, dependents before what they depend on.
// Every step skips nodes that were never created so the walk can run
// over partially constructed renderers.
func (r *Renderer) teardown() []teardownStep {
	return []teardownStep{
		{"frame slots", func() {
			for _, s := range r.slots {
				s.Destroy()
			}
			r.slots = nil
		}},
		{"framebuffers", func() {
			if r.RenderPass != nil {
				r.RenderPass.DestroyFramebuffers(r.framebuffers)
				r.framebuffers = nil
			}
		}},
		{"render pass", func() {
			if r.RenderPass != nil {
				r.RenderPass.Destroy()
				r.RenderPass = nil
			}
		}},
		{"image views", func() {
			for _, v := range r.views {
				v.Destroy()
			}
			r.views = nil
		}},
		{"swapchain", func() {
			if r.Swapchain != nil {
				r.Swapchain.Destroy()
				r.Swapchain = nil
			}
		}},
		{"device", func() {
			if r.Device != nil {
				r.Device.Destroy()
				r.Device = nil
			}
		}},
		{"surface", func() {
			if r.Instance != nil && r.VKSurface != vk.NullSurface {
				vk.DestroySurface(r.Instance.VKInstance, r.VKSurface, nil)
				r.VKSurface = vk.NullSurface
			}
		}},
		{"instance", func() {
			if r.Instance != nil {
				r.Instance.Destroy()
				r.Instance = nil
			}
		}},
	}
}

// Destroy tears the whole stack down in reverse dependency order after
// waiting for the device to go idle. Resources the application created,
// pipelines included, must be destroyed before the renderer. Partially
// constructed renderers tear down whatever exists.
func (r *Renderer) Destroy() {
	if r.Device != nil {
		r.Device.WaitIdle()
	}

	for _, step := range r.teardown() {
		logger().Debug("tearing down", "node", step.name)
		step.run()
	}
}
