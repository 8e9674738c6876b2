package gfx

import (
	"strings"
	"testing"
)

// These tests cover the renderer's context-less behavior; paths that need a
// live GPU adapter are exercised by the examples.

func TestNewRendererWithoutContext(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()

	if r.WasBackgroundRendererInitialized() {
		t.Error("WasBackgroundRendererInitialized() = true without a context")
	}
	if _, err := r.CreateRenderTarget(64, 64); err == nil {
		t.Error("CreateRenderTarget() without a context did not fail")
	}
}

func TestBackgroundRendererRequiresOwnedContext(t *testing.T) {
	r := NewRenderer(nil, WithBackgroundRenderer(true))
	defer r.Close()

	if r.WasBackgroundRendererInitialized() {
		t.Error("background renderer initialized without an owned context")
	}
}

func TestDrawValidation(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()

	if err := r.Draw(nil, nil); err == nil || !strings.Contains(err.Error(), "nil render target") {
		t.Errorf("Draw(nil, nil) error = %v, want nil render target error", err)
	}
	if err := r.Draw(&RenderTarget{}, nil); err == nil || !strings.Contains(err.Error(), "nil scene graph") {
		t.Errorf("Draw(target, nil) error = %v, want nil scene graph error", err)
	}
}

func TestStartDrawJobsWithoutContext(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()

	// An empty batch is fine.
	if err := r.StartDrawJobs(); err != nil {
		t.Errorf("StartDrawJobs() with no jobs error = %v, want nil", err)
	}

	r.EnqueueAsyncDrawJob(&RenderTarget{}, nil)
	if err := r.StartDrawJobs(); err == nil {
		t.Error("StartDrawJobs() without a context did not fail")
	}

	// The pending batch was consumed by the failed start.
	if err := r.StartDrawJobs(); err != nil {
		t.Errorf("StartDrawJobs() after drained batch error = %v, want nil", err)
	}
}

func TestWaitDrawJobsIdle(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()

	// Must return immediately with nothing in flight.
	r.WaitDrawJobs()
	r.AcquireGPUContext()
}

func TestWrapTextureView(t *testing.T) {
	target := WrapTextureView(nil, 128, 64)
	if target.Width() != 128 || target.Height() != 64 {
		t.Errorf("wrapped target size = %dx%d, want 128x64", target.Width(), target.Height())
	}
	// Destroying a wrapped target must not release the external texture.
	target.Destroy()
}
