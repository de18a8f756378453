package vkr

import (
	"fmt"
	"runtime"
	"sort"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceCandidate pairs a physical device with one of its queue families
// together with the facts device selection needs. Candidates are gathered
// from live queries but filtering and scoring only ever look at the
// recorded fields, so both can be driven from hand built candidates.
type DeviceCandidate struct {
	PhysicalDevice *PhysicalDevice
	QueueFamily    *QueueFamily

	DeviceType       vk.PhysicalDeviceType
	HasExtensions    bool
	HasAnisotropy    bool
	FormatCount      int
	PresentModeCount int
	GraphicsSupport  bool
	PresentSupport   bool
}

// Suitable reports whether this candidate can drive the renderer at all:
// required extensions present, anisotropic sampling available, at least
// one surface format and present mode, and a queue family that can both
// draw and present.
func (c *DeviceCandidate) Suitable() bool {
	return c.HasExtensions &&
		c.HasAnisotropy &&
		c.FormatCount > 0 &&
		c.PresentModeCount > 0 &&
		c.GraphicsSupport &&
		c.PresentSupport
}

// ScoreFunc ranks suitable candidates. Higher wins. Candidates with equal
// scores keep their enumeration order.
type ScoreFunc func(c *DeviceCandidate) int

// DefaultScore prefers discrete GPUs over everything else.
func DefaultScore(c *DeviceCandidate) int {
	if c.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
		return 1000
	}
	return 0
}

// DefaultDeviceExtensions returns the device extensions selection
// requires: the swapchain extension, plus the portability subset when
// running on top of MoltenVK.
func DefaultDeviceExtensions() []string {
	extensions := []string{vk.KhrSwapchainExtensionName}
	if runtime.GOOS == "darwin" {
		extensions = append(extensions, "VK_KHR_portability_subset")
	}
	return extensions
}

type PickDeviceOptions struct {
	// RequiredExtensions defaults to DefaultDeviceExtensions.
	RequiredExtensions []string

	// Score defaults to DefaultScore.
	Score ScoreFunc
}

// PickDevice gathers every (physical device, queue family) pair visible
// to the instance, filters out the unsuitable ones and returns the best
// scoring survivor. It fails with ErrNoSuitableDevice when nothing
// passes the filter.
func PickDevice(instance *Instance, surface vk.Surface, options *PickDeviceOptions) (*DeviceCandidate, error) {
	required := DefaultDeviceExtensions()
	score := ScoreFunc(DefaultScore)
	if options != nil {
		if options.RequiredExtensions != nil {
			required = options.RequiredExtensions
		}
		if options.Score != nil {
			score = options.Score
		}
	}

	candidates, err := gatherCandidates(instance, surface, required)
	if err != nil {
		return nil, err
	}

	best, err := pickCandidate(candidates, score)
	if err != nil {
		return nil, err
	}

	logger().Info("selected physical device",
		"device", best.PhysicalDevice.DeviceName,
		"queueFamily", best.QueueFamily.Index,
		"score", score(best))

	return best, nil
}

func gatherCandidates(instance *Instance, surface vk.Surface, required []string) ([]*DeviceCandidate, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, err
	}

	candidates := make([]*DeviceCandidate, 0)
	for _, pd := range devices {
		names, err := pd.SupportedExtensionNames()
		if err != nil {
			return nil, fmt.Errorf("enumerating extensions of %s: %w", pd, err)
		}

		features := pd.VKPhysicalDeviceFeatures()
		features.Deref()

		formats, err := pd.GetSurfaceFormats(surface)
		if err != nil {
			return nil, fmt.Errorf("querying surface formats of %s: %w", pd, err)
		}
		modes, err := pd.GetSurfacePresentModes(surface)
		if err != nil {
			return nil, fmt.Errorf("querying present modes of %s: %w", pd, err)
		}
		families, err := pd.QueueFamilies()
		if err != nil {
			return nil, fmt.Errorf("querying queue families of %s: %w", pd, err)
		}

		for _, qf := range families {
			candidates = append(candidates, &DeviceCandidate{
				PhysicalDevice:   pd,
				QueueFamily:      qf,
				DeviceType:       pd.VKPhysicalDeviceProperties.DeviceType,
				HasExtensions:    containsAll(names, required),
				HasAnisotropy:    features.SamplerAnisotropy == vk.True,
				FormatCount:      len(formats),
				PresentModeCount: len(modes),
				GraphicsSupport:  qf.IsGraphics(),
				PresentSupport:   qf.SupportsPresent(surface),
			})
		}
	}
	return candidates, nil
}

func pickCandidate(candidates []*DeviceCandidate, score ScoreFunc) (*DeviceCandidate, error) {
	suitable := make([]*DeviceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Suitable() {
			suitable = append(suitable, c)
		}
	}
	if len(suitable) == 0 {
		return nil, ErrNoSuitableDevice
	}

	sort.SliceStable(suitable, func(i, j int) bool {
		return score(suitable[i]) > score(suitable[j])
	})

	return suitable[0], nil
}

func containsAll(have []string, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
