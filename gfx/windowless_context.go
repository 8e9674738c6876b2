package gfx

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// CPUDeviceID selects the software fallback adapter instead of a hardware
// GPU. Any other device id requests the platform's default adapter.
const CPUDeviceID = -1

// currentContext tracks which WindowlessContext (if any) is currently held.
// Exactly one holder exists at a time; handoff between the calling thread and
// the background render thread goes through MakeCurrent/Release.
var currentContext atomic.Pointer[WindowlessContext]

// HasCurrent reports whether any windowless context is currently held. The
// batch renderer only creates its own context when none is.
//
// Returns:
//   - bool: true if a context is current
func HasCurrent() bool {
	return currentContext.Load() != nil
}

// CurrentContext returns the currently held context, or nil.
//
// Returns:
//   - *WindowlessContext: the current context or nil
func CurrentContext() *WindowlessContext {
	return currentContext.Load()
}

// WindowlessContext owns a headless WebGPU instance, adapter, device, and
// queue. It has no surface; rendering goes to offscreen targets. A context
// must be made current before draw submission and is held by exactly one
// thread at a time.
type WindowlessContext struct {
	gpuDeviceID int

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// hold serializes ownership: MakeCurrent locks, Release unlocks. The
	// unlock may happen on a different goroutine than the lock, which is the
	// whole point of the background-render handoff.
	hold sync.Mutex
}

// NewWindowlessContext creates a headless GPU context on the given device.
// Pass CPUDeviceID to force the fallback (software) adapter.
//
// Parameters:
//   - gpuDeviceID: the device selector (CPUDeviceID for software fallback)
//
// Returns:
//   - *WindowlessContext: the new context, not yet current
//   - error: error if no adapter or device could be acquired
func NewWindowlessContext(gpuDeviceID int) (*WindowlessContext, error) {
	c := &WindowlessContext{
		gpuDeviceID: gpuDeviceID,
		instance:    wgpu.CreateInstance(nil),
	}

	adapter, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: gpuDeviceID == CPUDeviceID,
	})
	if err != nil {
		c.instance.Release()
		return nil, fmt.Errorf("gfx: failed to acquire adapter for device %d: %w", gpuDeviceID, err)
	}
	c.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Batch Renderer Device",
	})
	if err != nil {
		c.instance.Release()
		return nil, fmt.Errorf("gfx: failed to acquire device %d: %w", gpuDeviceID, err)
	}
	c.device = device
	c.queue = device.GetQueue()

	return c, nil
}

// GPUDeviceID returns the device selector the context was created with.
func (c *WindowlessContext) GPUDeviceID() int { return c.gpuDeviceID }

// Instance returns the underlying WebGPU instance.
func (c *WindowlessContext) Instance() *wgpu.Instance { return c.instance }

// Adapter returns the underlying WebGPU adapter.
func (c *WindowlessContext) Adapter() *wgpu.Adapter { return c.adapter }

// Device returns the underlying WebGPU device.
func (c *WindowlessContext) Device() *wgpu.Device { return c.device }

// Queue returns the device's default queue.
func (c *WindowlessContext) Queue() *wgpu.Queue { return c.queue }

// MakeCurrent blocks until no other holder has the context, then marks this
// context as current for the caller.
func (c *WindowlessContext) MakeCurrent() {
	c.hold.Lock()
	currentContext.Store(c)
}

// Release gives up the context so another thread can make it current.
// Panics if the context is not current — releasing a context you do not hold
// is caller misuse.
func (c *WindowlessContext) Release() {
	if !currentContext.CompareAndSwap(c, nil) {
		panic("gfx: Release called on a context that is not current")
	}
	c.hold.Unlock()
}

// IsCurrent reports whether this context is the currently held one.
func (c *WindowlessContext) IsCurrent() bool {
	return currentContext.Load() == c
}

// Close releases the GPU device and instance. The context must not be
// current and must not be used afterwards.
func (c *WindowlessContext) Close() {
	if c.IsCurrent() {
		c.Release()
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
