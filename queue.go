package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return vk.Error(vk.QueueWaitIdle(q.VKQueue))
}

func (q *Queue) SubmitWithFence(fence *Fence, buffers ...*CommandBuffer) error {
	var submitInfo = vk.SubmitInfo{}
	submitInfo.SType = vk.StructureTypeSubmitInfo
	submitInfo.CommandBufferCount = uint32(len(buffers))

	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo.PCommandBuffers = b

	err := vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence.VKFence))
	if err != nil {
		return err
	}

	return nil
}

// SubmitOptions describes the synchronization around a queue submission.
// Each wait semaphore blocks execution at the matching stage in
// WaitDstStageMask, so the two slices must be the same length.
type SubmitOptions struct {
	WaitSemaphores   []*Semaphore
	WaitDstStageMask []vk.PipelineStageFlags
	SignalSemaphores []*Semaphore

	// Fence, when non nil, is signaled once the submitted work finishes.
	Fence *Fence
}

// SubmitWithOptions submits the command buffers with full control over
// wait and signal semaphores. This is what the frame scheduler uses to
// chain image acquisition, rendering and presentation together.
func (q *Queue) SubmitWithOptions(options *SubmitOptions, buffers ...*CommandBuffer) error {
	var submitInfo = vk.SubmitInfo{}
	submitInfo.SType = vk.StructureTypeSubmitInfo
	submitInfo.CommandBufferCount = uint32(len(buffers))

	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo.PCommandBuffers = b

	var fence vk.Fence = vk.NullFence
	if options != nil {
		if len(options.WaitSemaphores) > 0 {
			waits := make([]vk.Semaphore, len(options.WaitSemaphores))
			for i := range options.WaitSemaphores {
				waits[i] = options.WaitSemaphores[i].VKSemaphore
			}
			submitInfo.WaitSemaphoreCount = uint32(len(waits))
			submitInfo.PWaitSemaphores = waits
			submitInfo.PWaitDstStageMask = options.WaitDstStageMask
		}
		if len(options.SignalSemaphores) > 0 {
			signals := make([]vk.Semaphore, len(options.SignalSemaphores))
			for i := range options.SignalSemaphores {
				signals[i] = options.SignalSemaphores[i].VKSemaphore
			}
			submitInfo.SignalSemaphoreCount = uint32(len(signals))
			submitInfo.PSignalSemaphores = signals
		}
		if options.Fence != nil {
			fence = options.Fence.VKFence
		}
	}

	return vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence))
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device.String(), q.QueueFamily.String())
}
