package vkr

import "errors"

// Sentinel errors returned by device selection, swapchain negotiation and
// the buffer primitives. Callers can match them with errors.Is; most are
// returned wrapped with extra context about what was requested.
var (
	// ErrNoSuitableDevice means no physical device survived the
	// suitability filter.
	ErrNoSuitableDevice = errors.New("no suitable physical device found")

	// ErrNoSuitableFormat means none of the preferred surface formats
	// is available on this surface.
	ErrNoSuitableFormat = errors.New("no suitable swapchain format found")

	// ErrNoSuitablePresentMode means none of the preferred present modes
	// is available on this surface.
	ErrNoSuitablePresentMode = errors.New("no suitable swapchain present mode found")

	// ErrNoSuitableMemoryType means no device memory type satisfies both
	// the resource's type bits and the requested property flags.
	ErrNoSuitableMemoryType = errors.New("no matching memory type found")

	// ErrSizeMismatch is returned by MappedBuffer.Overwrite when the new
	// data is not exactly the size of the buffer.
	ErrSizeMismatch = errors.New("size must match when overwriting buffer")

	// ErrShaderAlignment is returned when SPIR-V code is not a multiple
	// of four bytes long.
	ErrShaderAlignment = errors.New("shader code is not aligned to 4 bytes")
)
