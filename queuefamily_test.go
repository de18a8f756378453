package vkr

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func familyWithFlags(index int, flags vk.QueueFlagBits) *QueueFamily {
	return &QueueFamily{
		Index: index,
		VKQueueFamilyProperties: vk.QueueFamilyProperties{
			QueueFlags: vk.QueueFlags(flags),
		},
	}
}

func TestQueueFamilyFlags(t *testing.T) {
	both := familyWithFlags(0, vk.QueueGraphicsBit|vk.QueueTransferBit)
	if !both.IsGraphics() || !both.IsTransfer() {
		t.Error("flags not recognized")
	}

	transferOnly := familyWithFlags(1, vk.QueueTransferBit)
	if transferOnly.IsGraphics() {
		t.Error("transfer only family reported graphics")
	}
	if !transferOnly.IsTransfer() {
		t.Error("transfer only family lost transfer")
	}

	compute := familyWithFlags(2, vk.QueueComputeBit)
	if compute.IsGraphics() || compute.IsTransfer() {
		t.Error("compute only family reported wrong capabilities")
	}
}

func TestQueueFamilySliceFilter(t *testing.T) {
	families := QueueFamilySlice{
		familyWithFlags(0, vk.QueueGraphicsBit|vk.QueueTransferBit),
		familyWithFlags(1, vk.QueueTransferBit),
		familyWithFlags(2, vk.QueueComputeBit),
	}

	graphics := families.FilterGraphics()
	if len(graphics) != 1 || graphics[0].Index != 0 {
		t.Errorf("graphics filter kept %d families", len(graphics))
	}

	transfer := families.FilterTransfer()
	if len(transfer) != 2 {
		t.Errorf("transfer filter kept %d families", len(transfer))
	}

	none := families.Filter(func(q *QueueFamily) bool { return false })
	if len(none) != 0 {
		t.Error("rejecting filter kept families")
	}

	// Filtering must not disturb the source slice.
	if len(families) != 3 {
		t.Error("filter mutated its receiver")
	}
}

func TestQueueFamilyString(t *testing.T) {
	s := familyWithFlags(3, vk.QueueGraphicsBit).String()
	want := "{ Index: 3 Graphics: true Transfer: false }"
	if s != want {
		t.Errorf("got %q want %q", s, want)
	}
}
