// Package uinputinject injects synthetic KeyEvents into a virtual uinput
// keyboard so remapped output reaches applications exactly as if it came
// from physical hardware.
package uinputinject

import (
	"fmt"
	"sync"

	"github.com/ThomasT75/uinput"

	"github.com/bnema/keyrd/internal/event"
	"github.com/bnema/keyrd/internal/keycode"
)

// Injector owns one virtual uinput keyboard device.
type Injector struct {
	mu       sync.Mutex
	keyboard uinput.Keyboard
	closed   bool
}

// New creates a virtual uinput keyboard named name (e.g. "keyrd Virtual
// Keyboard") backed by /dev/uinput.
func New(name string) (*Injector, error) {
	kb, err := uinput.CreateKeyboard("/dev/uinput", []byte(name))
	if err != nil {
		return nil, fmt.Errorf("uinputinject: creating virtual keyboard: %w", err)
	}
	return &Injector{keyboard: kb}, nil
}

// Inject emits one synthetic event. Unknown KeyCodes (no uinput/evdev
// mapping; evdevcapture forwards scan codes outside the keycode table as
// Unknown) are silently dropped — injection itself is infallible-by-design
// for anything the core hands it.
func (inj *Injector) Inject(ev event.KeyEvent) error {
	inj.mu.Lock()
	defer inj.mu.Unlock()

	if inj.closed {
		return fmt.Errorf("uinputinject: injector closed")
	}

	code, ok := keycode.ToEvdev(ev.KeyCode)
	if !ok {
		return nil
	}

	if ev.IsPress() {
		return inj.keyboard.KeyDown(int(code))
	}
	return inj.keyboard.KeyUp(int(code))
}

// InjectAll emits a sequence of events in order, stopping at the first
// error.
func (inj *Injector) InjectAll(events []event.KeyEvent) error {
	for _, ev := range events {
		if err := inj.Inject(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the virtual device.
func (inj *Injector) Close() error {
	inj.mu.Lock()
	defer inj.mu.Unlock()

	if inj.closed {
		return nil
	}
	inj.closed = true
	return inj.keyboard.Close()
}
