package taphold

import (
	"testing"

	"github.com/bnema/keyrd/internal/keycode"
)

func TestRegisterTapHold(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfigMs(keycode.Escape, 1, 200)
	if !p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Fatal("expected first registration to succeed")
	}
	if !p.IsTapHoldKey(keycode.CapsLock) {
		t.Error("expected CapsLock to be a registered tap-hold key")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfigMs(keycode.Escape, 1, 200)
	if !p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Fatal("expected first registration to succeed")
	}
	if p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Error("re-registering an already-registered key should fail")
	}
	if len(p.configs) != 1 {
		t.Errorf("expected exactly one distinct registered config, got %d", len(p.configs))
	}
}

func TestRegisterAfterResetSucceeds(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfigMs(keycode.Escape, 1, 200)
	if !p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Fatal("expected first registration to succeed")
	}
	p.Reset()
	if !p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Error("expected re-registering a key to succeed after Reset clears the registry")
	}
}

func TestRegisterAtCapacity(t *testing.T) {
	p := NewProcessor(1)
	cfg := NewConfigMs(keycode.Escape, 1, 200)
	if !p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Fatal("expected first registration at capacity 1 to succeed")
	}
	if p.RegisterTapHold(keycode.F13, cfg) {
		t.Error("expected second distinct registration to fail once at capacity")
	}
	if p.RegisterTapHold(keycode.CapsLock, cfg) {
		t.Error("re-registering the already-registered key should still fail at capacity")
	}
}

func TestProcessPressUnregisteredKey(t *testing.T) {
	p := NewProcessor(4)
	if out := p.ProcessPress(keycode.CapsLock, 0); out != nil {
		t.Errorf("expected no output for an unregistered key, got %v", out)
	}
}

func TestProcessPressTwiceIgnored(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfigMs(keycode.Escape, 1, 200)
	p.RegisterTapHold(keycode.CapsLock, cfg)

	if out := p.ProcessPress(keycode.CapsLock, 0); out != nil {
		t.Errorf("expected no output from the first press, got %v", out)
	}
	if !p.IsPending(keycode.CapsLock) {
		t.Fatal("expected key to be Pending after first press")
	}
	if out := p.ProcessPress(keycode.CapsLock, 10); out != nil {
		t.Errorf("expected no output from a repeated press while already tracked, got %v", out)
	}
	if p.Len() != 1 {
		t.Errorf("expected exactly one tracked entry, got %d", p.Len())
	}
}

func TestProcessReleaseBelowThresholdIsTap(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfig(keycode.Escape, 1, 200_000) // 200ms threshold, in microseconds
	p.RegisterTapHold(keycode.CapsLock, cfg)
	p.ProcessPress(keycode.CapsLock, 0)

	out := p.ProcessRelease(keycode.CapsLock, 100_000) // released at 100ms, under threshold
	want := []Output{
		keyEventOutput(keycode.Escape, true, 100_000),
		keyEventOutput(keycode.Escape, false, 100_000),
	}
	if len(out) != 2 || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("ProcessRelease (tap) = %+v, want %+v", out, want)
	}
	if p.Len() != 0 {
		t.Errorf("expected entry to be removed after release, Len() = %d", p.Len())
	}
}

func TestProcessReleaseAtOrOverThresholdIsDelayedHold(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfig(keycode.Escape, 1, 200_000)
	p.RegisterTapHold(keycode.CapsLock, cfg)
	p.ProcessPress(keycode.CapsLock, 0)

	// Exactly at threshold: inclusive comparison means this counts as hold,
	// not tap (resolves the open question in favor of >=).
	out := p.ProcessRelease(keycode.CapsLock, 200_000)
	want := []Output{activateOutput(1), deactivateOutput(1)}
	if len(out) != 2 || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("ProcessRelease (delayed hold, exact threshold) = %+v, want %+v", out, want)
	}
}

func TestProcessReleaseWhileHoldDeactivatesOnly(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfig(keycode.Escape, 1, 200_000)
	p.RegisterTapHold(keycode.CapsLock, cfg)
	p.ProcessPress(keycode.CapsLock, 0)
	p.CheckTimeouts(200_000)
	if !p.IsHold(keycode.CapsLock) {
		t.Fatal("expected key to be Hold after CheckTimeouts past threshold")
	}

	out := p.ProcessRelease(keycode.CapsLock, 500_000)
	want := []Output{deactivateOutput(1)}
	if len(out) != 1 || out[0] != want[0] {
		t.Errorf("ProcessRelease (hold) = %+v, want %+v", out, want)
	}
}

func TestProcessReleaseUnregisteredKeyNoOutput(t *testing.T) {
	p := NewProcessor(4)
	if out := p.ProcessRelease(keycode.CapsLock, 0); out != nil {
		t.Errorf("expected no output releasing an untracked key, got %v", out)
	}
}

func TestCheckTimeoutsOnlyTransitionsPending(t *testing.T) {
	p := NewProcessor(4)
	cfgA := NewConfig(keycode.Escape, 1, 100_000)
	cfgB := NewConfig(keycode.Tab, 2, 300_000)
	p.RegisterTapHold(keycode.CapsLock, cfgA)
	p.RegisterTapHold(keycode.F13, cfgB)
	p.ProcessPress(keycode.CapsLock, 0)
	p.ProcessPress(keycode.F13, 0)

	out := p.CheckTimeouts(150_000)
	if len(out) != 1 || out[0] != activateOutput(1) {
		t.Errorf("CheckTimeouts at 150_000 = %+v, want exactly one ActivateModifier(1)", out)
	}
	if !p.IsHold(keycode.CapsLock) {
		t.Error("expected CapsLock to have transitioned to Hold")
	}
	if !p.IsPending(keycode.F13) {
		t.Error("expected F13 to remain Pending (below its own threshold)")
	}

	// Calling CheckTimeouts again should not re-emit for the already-Hold key.
	out = p.CheckTimeouts(150_000)
	if len(out) != 0 {
		t.Errorf("expected no re-activation for an already-Hold entry, got %+v", out)
	}
}

func TestProcessOtherKeyPressActivatesPendingOnly(t *testing.T) {
	p := NewProcessor(4)
	cfgA := NewConfig(keycode.Escape, 1, 500_000)
	cfgB := NewConfig(keycode.Tab, 2, 500_000)
	p.RegisterTapHold(keycode.CapsLock, cfgA)
	p.RegisterTapHold(keycode.F13, cfgB)
	p.ProcessPress(keycode.CapsLock, 0)
	p.ProcessPress(keycode.F13, 0)
	p.CheckTimeouts(0) // both still pending at t=0, no-op

	out := p.ProcessOtherKeyPress(keycode.A)
	if len(out) != 2 {
		t.Fatalf("expected two ActivateModifier outputs (permissive hold), got %+v", out)
	}
	if !p.IsHold(keycode.CapsLock) || !p.IsHold(keycode.F13) {
		t.Error("expected both pending tap-hold keys to become Hold on an unrelated key press")
	}

	// Once Hold, a further other-key press should not re-activate.
	out = p.ProcessOtherKeyPress(keycode.B)
	if len(out) != 0 {
		t.Errorf("expected no further output once all entries are already Hold, got %+v", out)
	}
}

func TestHasPendingKeys(t *testing.T) {
	p := NewProcessor(4)
	if p.HasPendingKeys() {
		t.Error("expected no pending keys on an empty processor")
	}
	cfg := NewConfig(keycode.Escape, 1, 500_000)
	p.RegisterTapHold(keycode.CapsLock, cfg)
	p.ProcessPress(keycode.CapsLock, 0)
	if !p.HasPendingKeys() {
		t.Error("expected HasPendingKeys to report true while CapsLock is Pending")
	}
	p.CheckTimeouts(500_000)
	if p.HasPendingKeys() {
		t.Error("expected HasPendingKeys to report false once the only entry becomes Hold")
	}
}

func TestClearPreservesConfigsResetForgetsThem(t *testing.T) {
	p := NewProcessor(4)
	cfg := NewConfig(keycode.Escape, 1, 500_000)
	p.RegisterTapHold(keycode.CapsLock, cfg)
	p.ProcessPress(keycode.CapsLock, 0)

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("expected Clear to empty tracked entries, Len() = %d", p.Len())
	}
	if !p.IsTapHoldKey(keycode.CapsLock) {
		t.Error("expected Clear to preserve the registered config")
	}

	p.ProcessPress(keycode.CapsLock, 0)
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("expected Reset to empty tracked entries, Len() = %d", p.Len())
	}
	if p.IsTapHoldKey(keycode.CapsLock) {
		t.Error("expected Reset to forget registered configs")
	}
}

func TestCapacity(t *testing.T) {
	p := NewProcessor(7)
	if p.Capacity() != 7 {
		t.Errorf("Capacity() = %d, want 7", p.Capacity())
	}
	p2 := NewProcessor(0)
	if p2.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() with capacity<=0 = %d, want DefaultCapacity %d", p2.Capacity(), DefaultCapacity)
	}
}
