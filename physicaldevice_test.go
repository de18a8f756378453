package vkr

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func memoryProperties(flags ...vk.MemoryPropertyFlagBits) *vk.PhysicalDeviceMemoryProperties {
	mp := &vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: uint32(len(flags))}
	for i, f := range flags {
		mp.MemoryTypes[i] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyFlags(f)}
	}
	return mp
}

func TestFindMemoryType(t *testing.T) {
	mp := memoryProperties(
		vk.MemoryPropertyDeviceLocalBit,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)

	i, err := findMemoryType(mp, 0b11, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	if err != nil {
		t.Fatal(err)
	}
	if i != 1 {
		t.Errorf("got type %d", i)
	}

	i, err = findMemoryType(mp, 0b11, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		t.Fatal(err)
	}
	if i != 0 {
		t.Errorf("got type %d", i)
	}
}

func TestFindMemoryTypeHonorsTypeBits(t *testing.T) {
	// Type 1 has the right properties but the resource's type bits only
	// allow type 0.
	mp := memoryProperties(
		vk.MemoryPropertyDeviceLocalBit,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)

	_, err := findMemoryType(mp, 0b01, vk.MemoryPropertyHostVisibleBit)
	if !errors.Is(err, ErrNoSuitableMemoryType) {
		t.Errorf("got %v", err)
	}
}

func TestFindMemoryTypeAcceptsSuperset(t *testing.T) {
	mp := memoryProperties(
		vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit | vk.MemoryPropertyHostCachedBit)

	i, err := findMemoryType(mp, 0b1, vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	if err != nil {
		t.Fatal(err)
	}
	if i != 0 {
		t.Errorf("got type %d", i)
	}
}

func TestFindMemoryTypeFirstMatchWins(t *testing.T) {
	mp := memoryProperties(
		vk.MemoryPropertyDeviceLocalBit,
		vk.MemoryPropertyDeviceLocalBit)

	i, err := findMemoryType(mp, 0b11, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		t.Fatal(err)
	}
	if i != 0 {
		t.Errorf("got type %d", i)
	}
}

func TestFindMemoryTypeNoTypes(t *testing.T) {
	_, err := findMemoryType(memoryProperties(), 0b1, vk.MemoryPropertyDeviceLocalBit)
	if !errors.Is(err, ErrNoSuitableMemoryType) {
		t.Errorf("got %v", err)
	}
}
