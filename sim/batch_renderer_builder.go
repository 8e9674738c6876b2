package sim

import "github.com/RajeshDM/habitat-sim/gfx"

// BatchRendererBuilderOption is a functional option for configuring a batch
// renderer during creation.
type BatchRendererBuilderOption func(*batchRenderer)

// WithRenderer injects an externally constructed renderer instead of letting
// construction create a context and renderer of its own. The caller keeps
// ownership: Close on the batch renderer closes the injected renderer but
// never a context the caller created for it.
//
// Parameters:
//   - renderer: the renderer to use for all environments
//
// Returns:
//   - BatchRendererBuilderOption: the option to apply
func WithRenderer(renderer gfx.Renderer) BatchRendererBuilderOption {
	return func(r *batchRenderer) {
		r.renderer = renderer
	}
}
