// Package event defines the KeyEvent wire shape the remapping pipeline
// consumes and produces.
package event

import "github.com/bnema/keyrd/internal/keycode"

// Type distinguishes a key press from a key release.
type Type int

const (
	Press Type = iota
	Release
)

func (t Type) String() string {
	if t == Press {
		return "press"
	}
	return "release"
}

// KeyEvent is a single physical or synthetic keyboard event. TimestampUs is
// in microseconds; 0 means "unspecified". DeviceID names the originating
// physical device; empty means the default device. Two events are equal iff
// all four fields match.
type KeyEvent struct {
	Type        Type
	KeyCode     keycode.KeyCode
	TimestampUs uint64
	DeviceID    string
}

// NewPress builds a bare press event with no timestamp or device ID.
func NewPress(k keycode.KeyCode) KeyEvent {
	return KeyEvent{Type: Press, KeyCode: k}
}

// NewRelease builds a bare release event with no timestamp or device ID.
func NewRelease(k keycode.KeyCode) KeyEvent {
	return KeyEvent{Type: Release, KeyCode: k}
}

// WithTimestamp returns a copy of e with a new timestamp.
func (e KeyEvent) WithTimestamp(us uint64) KeyEvent {
	e.TimestampUs = us
	return e
}

// WithDeviceID returns a copy of e with a new device ID.
func (e KeyEvent) WithDeviceID(id string) KeyEvent {
	e.DeviceID = id
	return e
}

// WithKeyCode returns a copy of e carrying a different key code, preserving
// event type, timestamp, and device ID.
func (e KeyEvent) WithKeyCode(k keycode.KeyCode) KeyEvent {
	e.KeyCode = k
	return e
}

// Opposite returns a copy of e with the event type flipped, preserving
// everything else.
func (e KeyEvent) Opposite() KeyEvent {
	if e.Type == Press {
		e.Type = Release
	} else {
		e.Type = Press
	}
	return e
}

// IsPress reports whether e is a press event.
func (e KeyEvent) IsPress() bool { return e.Type == Press }

// IsRelease reports whether e is a release event.
func (e KeyEvent) IsRelease() bool { return e.Type == Release }
