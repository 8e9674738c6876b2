package gfx

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTarget is an offscreen color attachment a sensor's view is rendered
// into. Targets created by the renderer own their texture; targets wrapping
// an external view (e.g. a window surface texture) own nothing.
type RenderTarget struct {
	texture  *wgpu.Texture
	view     *wgpu.TextureView
	width    int
	height   int
	external bool
}

// WrapTextureView builds a RenderTarget around an externally owned texture
// view, such as a swapchain image acquired by a debug viewer. Destroy is a
// no-op for wrapped targets.
//
// Parameters:
//   - view: the externally owned view to render into
//   - width: the view width in pixels
//   - height: the view height in pixels
//
// Returns:
//   - *RenderTarget: the wrapping target
func WrapTextureView(view *wgpu.TextureView, width, height int) *RenderTarget {
	return &RenderTarget{view: view, width: width, height: height, external: true}
}

// newRenderTarget creates an owned RGBA8 color target on the given device.
func newRenderTarget(device *wgpu.Device, width, height int) (*RenderTarget, error) {
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Render Target",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: failed to create %dx%d render target texture: %w", width, height, err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("gfx: failed to create render target view: %w", err)
	}
	return &RenderTarget{texture: texture, view: view, width: width, height: height}, nil
}

// View returns the target's texture view for use as a color attachment.
func (t *RenderTarget) View() *wgpu.TextureView { return t.view }

// Width returns the target width in pixels.
func (t *RenderTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *RenderTarget) Height() int { return t.height }

// Destroy releases the target's GPU resources. Safe to call more than once.
// Wrapped external views are left untouched.
func (t *RenderTarget) Destroy() {
	if t.external {
		return
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
