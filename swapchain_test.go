package vkr

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormatPreference(t *testing.T) {
	// BGRA sRGB wins even when listed after RGBA sRGB.
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	f, err := chooseSurfaceFormat(formats)
	if err != nil {
		t.Fatal(err)
	}
	if f.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("got format %v", f.Format)
	}
}

func TestChooseSurfaceFormatFallback(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	f, err := chooseSurfaceFormat(formats)
	if err != nil {
		t.Fatal(err)
	}
	if f.Format != vk.FormatR8g8b8a8Srgb {
		t.Errorf("got format %v", f.Format)
	}
}

func TestChooseSurfaceFormatRejects(t *testing.T) {
	_, err := chooseSurfaceFormat(nil)
	if !errors.Is(err, ErrNoSuitableFormat) {
		t.Errorf("empty list: got %v", err)
	}

	// A linear only surface must not be silently accepted.
	_, err = chooseSurfaceFormat([]vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	})
	if !errors.Is(err, ErrNoSuitableFormat) {
		t.Errorf("unorm only: got %v", err)
	}

	// The right format in the wrong color space does not count either.
	_, err = chooseSurfaceFormat([]vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpace(1)},
	})
	if !errors.Is(err, ErrNoSuitableFormat) {
		t.Errorf("wrong color space: got %v", err)
	}
}

func TestChoosePresentMode(t *testing.T) {
	m, err := choosePresentMode([]vk.PresentMode{vk.PresentModeFifo}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m != vk.PresentModeFifo {
		t.Errorf("got mode %v", m)
	}

	m, err = choosePresentMode([]vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m != vk.PresentModeMailbox {
		t.Errorf("mailbox available but got %v", m)
	}
}

func TestChoosePresentModeOverride(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifo, vk.PresentModeMailbox}

	m, err := choosePresentMode(modes, []vk.PresentMode{vk.PresentModeImmediate})
	if err != nil {
		t.Fatal(err)
	}
	if m != vk.PresentModeImmediate {
		t.Errorf("override ignored, got %v", m)
	}

	// An override listing only unsupported modes fails instead of
	// falling back to the defaults behind the caller's back.
	_, err = choosePresentMode([]vk.PresentMode{vk.PresentModeFifo}, []vk.PresentMode{vk.PresentModeImmediate})
	if !errors.Is(err, ErrNoSuitablePresentMode) {
		t.Errorf("unsupported override: got %v", err)
	}
}

func TestChoosePresentModeRejects(t *testing.T) {
	_, err := choosePresentMode(nil, nil)
	if !errors.Is(err, ErrNoSuitablePresentMode) {
		t.Errorf("empty list: got %v", err)
	}

	_, err = choosePresentMode([]vk.PresentMode{vk.PresentModeImmediate}, nil)
	if !errors.Is(err, ErrNoSuitablePresentMode) {
		t.Errorf("immediate only: got %v", err)
	}
}

func extentCaps(current, min, max vk.Extent2D) *vk.SurfaceCapabilities {
	return &vk.SurfaceCapabilities{
		CurrentExtent:  current,
		MinImageExtent: min,
		MaxImageExtent: max,
	}
}

func TestChooseExtentSurfaceDictates(t *testing.T) {
	caps := extentCaps(
		vk.Extent2D{Width: 800, Height: 600},
		vk.Extent2D{Width: 1, Height: 1},
		vk.Extent2D{Width: 4096, Height: 4096})

	got := chooseExtent(caps, vk.Extent2D{Width: 1920, Height: 1080})
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("requested size overrode the surface: %dx%d", got.Width, got.Height)
	}
}

func TestChooseExtentClampsRequested(t *testing.T) {
	caps := extentCaps(
		vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		vk.Extent2D{Width: 200, Height: 100},
		vk.Extent2D{Width: 2000, Height: 1000})

	got := chooseExtent(caps, vk.Extent2D{Width: 800, Height: 600})
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("in range size changed: %dx%d", got.Width, got.Height)
	}

	got = chooseExtent(caps, vk.Extent2D{Width: 10, Height: 5000})
	if got.Width != 200 || got.Height != 1000 {
		t.Errorf("per dimension clamp broken: %dx%d", got.Width, got.Height)
	}
}

func TestChooseExtentSentinelNeedsBothDimensions(t *testing.T) {
	// Only the all ones extent means the application picks the size. A
	// single maxed dimension is a size like any other.
	caps := extentCaps(
		vk.Extent2D{Width: vk.MaxUint32, Height: 600},
		vk.Extent2D{Width: 1, Height: 1},
		vk.Extent2D{Width: 4096, Height: 4096})

	got := chooseExtent(caps, vk.Extent2D{Width: 800, Height: 600})
	if got.Width != vk.MaxUint32 || got.Height != 600 {
		t.Errorf("half sentinel treated as sentinel: %dx%d", got.Width, got.Height)
	}
}

// Acquire and present report chain staleness through the same mapping,
// so out of date and suboptimal always land in the rebuild path no
// matter which call saw them.
func TestStaleness(t *testing.T) {
	rebuild, err := staleness(vk.Success)
	if err != nil {
		t.Fatal(err)
	}
	if rebuild {
		t.Error("success asked for a rebuild")
	}

	for _, res := range []vk.Result{vk.ErrorOutOfDate, vk.Suboptimal} {
		rebuild, err := staleness(res)
		if err != nil {
			t.Fatalf("result %d: %v", res, err)
		}
		if !rebuild {
			t.Errorf("result %d did not ask for a rebuild", res)
		}
	}

	if _, err := staleness(vk.ErrorDeviceLost); err == nil {
		t.Error("device lost was not surfaced as an error")
	}
}

func TestChooseImageCount(t *testing.T) {
	if n := chooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 2}); n != 3 {
		t.Errorf("unbounded: got %d", n)
	}
	if n := chooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 3}); n != 3 {
		t.Errorf("within bounds: got %d", n)
	}
	if n := chooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 3, MaxImageCount: 3}); n != 3 {
		t.Errorf("capped: got %d", n)
	}
}

func TestClampFramesInFlight(t *testing.T) {
	cases := []struct {
		requested int
		min, max  uint32
		want      int
	}{
		{2, 1, 0, 2},
		{2, 3, 0, 3},
		{5, 1, 3, 3},
		{2, 2, 2, 2},
		{1, 2, 4, 2},
	}

	for _, tc := range cases {
		caps := &vk.SurfaceCapabilities{MinImageCount: tc.min, MaxImageCount: tc.max}
		if got := clampFramesInFlight(tc.requested, caps); got != tc.want {
			t.Errorf("clampFramesInFlight(%d, min %d, max %d) = %d, want %d",
				tc.requested, tc.min, tc.max, got, tc.want)
		}
	}
}
