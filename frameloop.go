package vkr

// FrameSlot owns the recording and synchronization state for one frame
// in flight: a command buffer, the two semaphores ordering GPU work
// against the presentation engine, and the fence the CPU waits on
// before reusing the slot.
type FrameSlot struct {
	Device *Device

	// Index is the slot's position in its frame loop.
	Index int

	Cmd        *CommandBuffer
	ImageReady *Semaphore
	RenderDone *Semaphore
	InFlight   *Fence
}

// CreateFrameSlots allocates count slots from the frame pool. The
// fences start signaled so the first wait on every slot returns
// immediately.
func (d *Device) CreateFrameSlots(count int) ([]*FrameSlot, error) {
	slots := make([]*FrameSlot, 0, count)

	fail := func(err error) ([]*FrameSlot, error) {
		for _, s := range slots {
			s.Destroy()
		}
		return nil, err
	}

	for i := 0; i < count; i++ {
		slot := &FrameSlot{Device: d, Index: i}
		slots = append(slots, slot)

		var err error
		if slot.Cmd, err = d.FramePool.AllocateBuffer(); err != nil {
			return fail(err)
		}
		if slot.ImageReady, err = d.CreateSemaphore(); err != nil {
			return fail(err)
		}
		if slot.RenderDone, err = d.CreateSemaphore(); err != nil {
			return fail(err)
		}
		if slot.InFlight, err = d.CreateFence(true); err != nil {
			return fail(err)
		}
	}

	return slots, nil
}

func (s *FrameSlot) Destroy() {
	if s.Cmd != nil {
		s.Device.FramePool.FreeBuffer(s.Cmd)
	}
	if s.ImageReady != nil {
		s.ImageReady.Destroy()
	}
	if s.RenderDone != nil {
		s.RenderDone.Destroy()
	}
	if s.InFlight != nil {
		s.InFlight.Destroy()
	}
}

// FrameBackend joins the frame loop to the device and presentation
// machinery. The renderer provides a swapchain backed implementation.
// Substituting a scripted one exercises the loop without a GPU.
type FrameBackend interface {
	// WaitSlot blocks until the slot's previous use retired, then makes
	// the slot recordable again.
	WaitSlot(slot *FrameSlot) error

	// Acquire hands out the next presentable image index. A true
	// rebuild result asks the loop to call Rebuild and acquire again.
	Acquire(slot *FrameSlot) (index int, rebuild bool, err error)

	// Submit records and submits the slot's work against the image at
	// index.
	Submit(slot *FrameSlot, index int) error

	// Present queues the image at index for display. A true rebuild
	// result asks the loop to call Rebuild after the frame completes.
	Present(slot *FrameSlot, index int) (rebuild bool, err error)

	// Rebuild remakes the presentation surface after a staleness
	// report or a resize.
	Rebuild() error
}

// FrameLoop cycles through its slots, running the per frame protocol of
// wait, acquire, submit and present against a backend. One slot per
// frame in flight keeps the CPU at most len(slots) frames ahead of the
// GPU.
type FrameLoop struct {
	backend FrameBackend
	slots   []*FrameSlot
	frame   int
}

// NewFrameLoop builds a loop over the given slots. The slot list must
// not be empty.
func NewFrameLoop(backend FrameBackend, slots []*FrameSlot) *FrameLoop {
	return &FrameLoop{backend: backend, slots: slots}
}

// Slots returns the loop's slots in index order.
func (l *FrameLoop) Slots() []*FrameSlot {
	return l.slots
}

// Frame returns the index of the slot the next Draw will use.
func (l *FrameLoop) Frame() int {
	return l.frame
}

// Draw runs one frame through the current slot and advances to the
// next. Staleness reported during acquire rebuilds and retries within
// the same frame. Staleness reported during present rebuilds after the
// frame's work is already queued. The slot only advances once the
// frame completed.
func (l *FrameLoop) Draw() error {
	slot := l.slots[l.frame]

	if err := l.backend.WaitSlot(slot); err != nil {
		return err
	}

	var image int
	for {
		index, rebuild, err := l.backend.Acquire(slot)
		if err != nil {
			return err
		}
		if !rebuild {
			image = index
			break
		}
		if err := l.backend.Rebuild(); err != nil {
			return err
		}
	}

	if err := l.backend.Submit(slot, image); err != nil {
		return err
	}

	rebuild, err := l.backend.Present(slot, image)
	if err != nil {
		return err
	}
	if rebuild {
		if err := l.backend.Rebuild(); err != nil {
			return err
		}
	}

	l.frame = (l.frame + 1) % len(l.slots)

	return nil
}
