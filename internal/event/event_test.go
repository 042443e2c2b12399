package event

import (
	"testing"

	"github.com/bnema/keyrd/internal/keycode"
)

func TestOpposite(t *testing.T) {
	press := NewPress(keycode.A).WithTimestamp(100).WithDeviceID("kbd0")
	release := press.Opposite()

	if release.Type != Release {
		t.Errorf("Opposite() of a press should be a release, got %v", release.Type)
	}
	if release.KeyCode != press.KeyCode || release.TimestampUs != press.TimestampUs || release.DeviceID != press.DeviceID {
		t.Errorf("Opposite() should preserve all fields except Type: got %+v, from %+v", release, press)
	}

	backToPress := release.Opposite()
	if backToPress != press {
		t.Errorf("Opposite().Opposite() = %+v, want %+v", backToPress, press)
	}
}

func TestWithKeyCode(t *testing.T) {
	e := NewPress(keycode.A).WithTimestamp(50).WithDeviceID("kbd0")
	e2 := e.WithKeyCode(keycode.B)

	if e2.KeyCode != keycode.B {
		t.Errorf("WithKeyCode: KeyCode = %v, want %v", e2.KeyCode, keycode.B)
	}
	if e2.Type != e.Type || e2.TimestampUs != e.TimestampUs || e2.DeviceID != e.DeviceID {
		t.Errorf("WithKeyCode should preserve all other fields: got %+v, from %+v", e2, e)
	}
	if e.KeyCode != keycode.A {
		t.Errorf("WithKeyCode should not mutate the receiver: original KeyCode = %v, want %v", e.KeyCode, keycode.A)
	}
}

func TestEquality(t *testing.T) {
	a := KeyEvent{Type: Press, KeyCode: keycode.A, TimestampUs: 1, DeviceID: "kbd0"}
	b := KeyEvent{Type: Press, KeyCode: keycode.A, TimestampUs: 1, DeviceID: "kbd0"}
	c := KeyEvent{Type: Press, KeyCode: keycode.A, TimestampUs: 2, DeviceID: "kbd0"}

	if a != b {
		t.Errorf("identical events should compare equal: %+v != %+v", a, b)
	}
	if a == c {
		t.Errorf("events differing in TimestampUs should not compare equal: %+v == %+v", a, c)
	}
}

func TestIsPressIsRelease(t *testing.T) {
	p := NewPress(keycode.A)
	r := NewRelease(keycode.A)

	if !p.IsPress() || p.IsRelease() {
		t.Errorf("NewPress result: IsPress=%v IsRelease=%v, want true/false", p.IsPress(), p.IsRelease())
	}
	if !r.IsRelease() || r.IsPress() {
		t.Errorf("NewRelease result: IsRelease=%v IsPress=%v, want true/false", r.IsRelease(), r.IsPress())
	}
}

func TestTypeString(t *testing.T) {
	if Press.String() != "press" {
		t.Errorf("Press.String() = %q, want %q", Press.String(), "press")
	}
	if Release.String() != "release" {
		t.Errorf("Release.String() = %q, want %q", Release.String(), "release")
	}
}
