package vkr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// scriptedBackend drives a FrameLoop without a device. It hands out
// image indices round robin and can be told to report staleness on
// specific acquire or present calls. Every call is appended to log so
// tests can assert the exact protocol order.
type scriptedBackend struct {
	images int
	next   int

	rebuildOnAcquire map[int]bool
	rebuildOnPresent map[int]bool

	waitErr    error
	submitErr  error
	rebuildErr error

	acquireCalls int
	presentCalls int
	rebuildCalls int

	log []string
}

func newScriptedBackend(images int) *scriptedBackend {
	return &scriptedBackend{
		images:           images,
		rebuildOnAcquire: map[int]bool{},
		rebuildOnPresent: map[int]bool{},
	}
}

func (b *scriptedBackend) WaitSlot(slot *FrameSlot) error {
	b.log = append(b.log, fmt.Sprintf("wait %d", slot.Index))
	return b.waitErr
}

func (b *scriptedBackend) Acquire(slot *FrameSlot) (int, bool, error) {
	b.acquireCalls++
	if b.rebuildOnAcquire[b.acquireCalls] {
		b.log = append(b.log, "acquire stale")
		return 0, true, nil
	}
	index := b.next
	b.next = (b.next + 1) % b.images
	b.log = append(b.log, fmt.Sprintf("acquire %d", index))
	return index, false, nil
}

func (b *scriptedBackend) Submit(slot *FrameSlot, index int) error {
	b.log = append(b.log, fmt.Sprintf("submit %d %d", slot.Index, index))
	return b.submitErr
}

func (b *scriptedBackend) Present(slot *FrameSlot, index int) (bool, error) {
	b.presentCalls++
	b.log = append(b.log, fmt.Sprintf("present %d %d", slot.Index, index))
	return b.rebuildOnPresent[b.presentCalls], nil
}

func (b *scriptedBackend) Rebuild() error {
	b.rebuildCalls++
	b.log = append(b.log, "rebuild")
	return b.rebuildErr
}

func (b *scriptedBackend) logString() string {
	return strings.Join(b.log, ", ")
}

func bareSlots(count int) []*FrameSlot {
	slots := make([]*FrameSlot, count)
	for i := range slots {
		slots[i] = &FrameSlot{Index: i}
	}
	return slots
}

func TestFrameLoopProtocolOrder(t *testing.T) {
	b := newScriptedBackend(3)
	loop := NewFrameLoop(b, bareSlots(2))

	if err := loop.Draw(); err != nil {
		t.Fatal(err)
	}

	want := "wait 0, acquire 0, submit 0 0, present 0 0"
	if got := b.logString(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestFrameLoopCyclesSlots(t *testing.T) {
	b := newScriptedBackend(3)
	loop := NewFrameLoop(b, bareSlots(2))

	for i := 0; i < 5; i++ {
		if err := loop.Draw(); err != nil {
			t.Fatal(err)
		}
	}

	// Slots go 0,1,0,1,0 regardless of which image index came back.
	var waits, submits []string
	for _, entry := range b.log {
		if strings.HasPrefix(entry, "wait ") {
			waits = append(waits, entry)
		}
		if strings.HasPrefix(entry, "submit ") {
			submits = append(submits, entry)
		}
	}
	want := "wait 0, wait 1, wait 0, wait 1, wait 0"
	if got := strings.Join(waits, ", "); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if len(submits) != 5 {
		t.Errorf("5 draws made %d submissions", len(submits))
	}

	if loop.Frame() != 1 {
		t.Errorf("next frame is %d", loop.Frame())
	}
}

func TestFrameLoopCyclesAnySlotCount(t *testing.T) {
	for _, count := range []int{1, 2, 3, 4} {
		b := newScriptedBackend(count + 1)
		loop := NewFrameLoop(b, bareSlots(count))

		draws := 2*count + 1
		for i := 0; i < draws; i++ {
			want := i % count
			if loop.Frame() != want {
				t.Fatalf("%d slots, draw %d: frame %d, want %d", count, i, loop.Frame(), want)
			}
			if err := loop.Draw(); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestFrameLoopRebuildsOnAcquire(t *testing.T) {
	b := newScriptedBackend(3)
	b.rebuildOnAcquire[3] = true
	loop := NewFrameLoop(b, bareSlots(2))

	for i := 0; i < 3; i++ {
		if err := loop.Draw(); err != nil {
			t.Fatal(err)
		}
	}

	if b.rebuildCalls != 1 {
		t.Errorf("rebuilt %d times", b.rebuildCalls)
	}

	// The third frame retries the acquire after rebuilding and still
	// completes on its own slot.
	want := "wait 0, acquire 0, submit 0 0, present 0 0, " +
		"wait 1, acquire 1, submit 1 1, present 1 1, " +
		"wait 0, acquire stale, rebuild, acquire 2, submit 0 2, present 0 2"
	if got := b.logString(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	if loop.Frame() != 1 {
		t.Errorf("next frame is %d", loop.Frame())
	}
}

func TestFrameLoopRebuildsAfterPresent(t *testing.T) {
	b := newScriptedBackend(3)
	b.rebuildOnPresent[2] = true
	loop := NewFrameLoop(b, bareSlots(2))

	for i := 0; i < 2; i++ {
		if err := loop.Draw(); err != nil {
			t.Fatal(err)
		}
	}

	if b.rebuildCalls != 1 {
		t.Errorf("rebuilt %d times", b.rebuildCalls)
	}

	// Staleness at present rebuilds after the frame's work is queued,
	// and the frame still counts as complete.
	want := "wait 0, acquire 0, submit 0 0, present 0 0, " +
		"wait 1, acquire 1, submit 1 1, present 1 1, rebuild"
	if got := b.logString(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	if loop.Frame() != 0 {
		t.Errorf("next frame is %d", loop.Frame())
	}
}

func TestFrameLoopWaitErrorStopsFrame(t *testing.T) {
	failed := errors.New("device lost")
	b := newScriptedBackend(3)
	b.waitErr = failed
	loop := NewFrameLoop(b, bareSlots(2))

	if err := loop.Draw(); !errors.Is(err, failed) {
		t.Errorf("got %v", err)
	}
	if b.acquireCalls != 0 {
		t.Error("acquire ran after a failed wait")
	}
	if loop.Frame() != 0 {
		t.Error("failed frame advanced the slot")
	}
}

func TestFrameLoopSubmitErrorStopsFrame(t *testing.T) {
	failed := errors.New("submit failed")
	b := newScriptedBackend(3)
	b.submitErr = failed
	loop := NewFrameLoop(b, bareSlots(2))

	if err := loop.Draw(); !errors.Is(err, failed) {
		t.Errorf("got %v", err)
	}
	if b.presentCalls != 0 {
		t.Error("present ran after a failed submit")
	}
	if loop.Frame() != 0 {
		t.Error("failed frame advanced the slot")
	}
}

func TestFrameLoopRebuildErrorPropagates(t *testing.T) {
	failed := errors.New("rebuild failed")
	b := newScriptedBackend(3)
	b.rebuildOnAcquire[1] = true
	b.rebuildErr = failed
	loop := NewFrameLoop(b, bareSlots(2))

	if err := loop.Draw(); !errors.Is(err, failed) {
		t.Errorf("got %v", err)
	}
	if loop.Frame() != 0 {
		t.Error("failed frame advanced the slot")
	}
}
