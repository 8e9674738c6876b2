package gfx

import "github.com/RajeshDM/habitat-sim/profiler"

// RendererBuilderOption is a functional option for configuring a renderer
// during creation.
type RendererBuilderOption func(*renderer)

// WithBackgroundRenderer enables or disables the background render thread.
// When enabled, StartDrawJobs hands each batch (and the GPU context) to a
// dedicated thread instead of drawing on the caller's thread.
//
// Parameters:
//   - enabled: true to run draw batches on the background render thread
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithBackgroundRenderer(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.backgroundEnabled = enabled
	}
}

// WithLeaveContextWithBackgroundRenderer keeps the GPU context current on the
// background render thread between batches instead of releasing it after each
// one. Callers that need the context must take it back with AcquireGPUContext
// after fencing with WaitDrawJobs.
//
// Parameters:
//   - leave: true to keep the context on the render thread between batches
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithLeaveContextWithBackgroundRenderer(leave bool) RendererBuilderOption {
	return func(r *renderer) {
		r.leaveContext = leave
	}
}

// WithClearColor sets the color each render target is cleared to at the start
// of its frame pass.
//
// Parameters:
//   - red: red component in [0, 1]
//   - green: green component in [0, 1]
//   - blue: blue component in [0, 1]
//   - alpha: alpha component in [0, 1]
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor.R = red
		r.clearColor.G = green
		r.clearColor.B = blue
		r.clearColor.A = alpha
	}
}

// WithPrepWorkers sets the number of workers used to flatten scene graphs
// before submission. Values below 1 are clamped to 1.
//
// Parameters:
//   - workers: worker count for the flattening pool
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithPrepWorkers(workers int) RendererBuilderOption {
	return func(r *renderer) {
		r.prepWorkers = max(workers, 1)
	}
}

// WithProfiling enables periodic draw-batch throughput logging.
//
// Parameters:
//   - enabled: true to log batch and job rates once per second
//
// Returns:
//   - RendererBuilderOption: the option to apply
func WithProfiling(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		if enabled {
			r.prof = profiler.NewProfiler()
		}
	}
}
