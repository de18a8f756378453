package vkr

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// InitializeForGLFW points the Vulkan loader at the proc address
// lookup GLFW provides and initializes the API. Call it once after
// glfw.Init and before creating any renderer.
func InitializeForGLFW() error {
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		return fmt.Errorf("initializing Vulkan: %w", err)
	}
	return nil
}

// WindowSource adapts a GLFW window to SurfaceSource. The window must
// be created with glfw.ClientAPI set to glfw.NoAPI.
type WindowSource struct {
	Window *glfw.Window
}

// InstanceExtensions returns the instance extensions the window system
// needs for surface creation.
func (w *WindowSource) InstanceExtensions() []string {
	return w.Window.GetRequiredInstanceExtensions()
}

// CreateSurface makes a surface for the window on the given instance.
func (w *WindowSource) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surfacePtr, err := w.Window.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, fmt.Errorf("creating window surface: %w", err)
	}
	if surfacePtr == 0 {
		return vk.NullSurface, errors.New("creating window surface: got a null surface")
	}
	return vk.SurfaceFromPointer(surfacePtr), nil
}

// Extent returns the window's framebuffer size in pixels.
func (w *WindowSource) Extent() vk.Extent2D {
	width, height := w.Window.GetFramebufferSize()
	return vk.Extent2D{
		Width:  uint32(width),
		Height: uint32(height),
	}
}
