package gfx

import "testing"

func TestReleaseNotCurrentPanics(t *testing.T) {
	c := &WindowlessContext{}
	if c.IsCurrent() {
		t.Fatal("fresh context reports current")
	}
	defer func() {
		if recover() == nil {
			t.Error("Release() on a non-current context did not panic")
		}
	}()
	c.Release()
}

func TestHasCurrentDefault(t *testing.T) {
	if HasCurrent() {
		t.Error("HasCurrent() = true with no context made current")
	}
	if CurrentContext() != nil {
		t.Error("CurrentContext() != nil with no context made current")
	}
}

func TestWindowlessContextLifecycle(t *testing.T) {
	ctx, err := NewWindowlessContext(CPUDeviceID)
	if err != nil {
		t.Skipf("no GPU adapter available: %v", err)
	}
	defer ctx.Close()

	if ctx.Device() == nil || ctx.Queue() == nil {
		t.Fatal("context created without device or queue")
	}
	if ctx.GPUDeviceID() != CPUDeviceID {
		t.Errorf("GPUDeviceID() = %d, want %d", ctx.GPUDeviceID(), CPUDeviceID)
	}

	ctx.MakeCurrent()
	if !ctx.IsCurrent() || !HasCurrent() {
		t.Error("context not reported current after MakeCurrent")
	}
	if CurrentContext() != ctx {
		t.Error("CurrentContext() is not the context just made current")
	}

	ctx.Release()
	if ctx.IsCurrent() || HasCurrent() {
		t.Error("context still reported current after Release")
	}
}
