// Package evdevcapture captures physical keyboard events from a Linux
// evdev device and translates them into the core's event.KeyEvent, handing
// each one to the daemon serially as the contract in §5 requires.
package evdevcapture

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	evdev "github.com/gvalkov/golang-evdev"

	"github.com/bnema/keyrd/internal/event"
	"github.com/bnema/keyrd/internal/keycode"
	"github.com/bnema/keyrd/internal/logger"
)

// DeviceInfo describes one enumerated physical keyboard.
type DeviceInfo struct {
	Name string
	Path string
}

// ListKeyboards enumerates candidate keyboard devices via /dev/input/by-id,
// which gives stable, descriptive names that survive reboots and USB port
// changes, falling back to /dev/input/by-path.
func ListKeyboards() ([]DeviceInfo, error) {
	var devices []DeviceInfo
	for _, dir := range []string{"/dev/input/by-id", "/dev/input/by-path"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.Contains(strings.ToLower(e.Name()), "kbd") && !strings.Contains(strings.ToLower(e.Name()), "keyboard") {
				continue
			}
			symlinkPath := fmt.Sprintf("%s/%s", dir, e.Name())
			realPath, err := resolveSymlink(symlinkPath)
			if err != nil {
				continue
			}
			dev, err := evdev.Open(realPath)
			if err != nil {
				continue
			}
			devices = append(devices, DeviceInfo{Name: dev.Name, Path: realPath})
			dev.File.Close()
		}
		if len(devices) > 0 {
			return devices, nil
		}
	}
	return devices, nil
}

func resolveSymlink(symlinkPath string) (string, error) {
	target, err := os.Readlink(symlinkPath)
	if err != nil {
		return "", err
	}
	return "/dev/input/" + strings.TrimPrefix(target, "../"), nil
}

// Capture owns one open evdev keyboard device and turns its raw events into
// event.KeyEvent, delivered one at a time via the Events channel.
type Capture struct {
	mu       sync.Mutex
	dev      *evdev.InputDevice
	deviceID string
	grabbed  bool

	Events chan event.KeyEvent
}

// Open opens path as the physical keyboard to capture. deviceID tags every
// emitted event; the pipeline carries it through unchanged onto output events.
func Open(path, deviceID string) (*Capture, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("evdevcapture: opening %s: %w", path, err)
	}
	return &Capture{
		dev:      dev,
		deviceID: deviceID,
		Events:   make(chan event.KeyEvent, 64),
	}, nil
}

// Grab takes exclusive access to the device so events stop reaching any
// other consumer (the X/Wayland compositor, other evdev readers) — required
// so the daemon's injected output is the only thing applications see.
func (c *Capture) Grab() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grabbed {
		return nil
	}
	if err := c.dev.Grab(); err != nil {
		return fmt.Errorf("evdevcapture: grab: %w", err)
	}
	c.grabbed = true
	return nil
}

// Release gives up exclusive access.
func (c *Capture) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.grabbed {
		return nil
	}
	if err := c.dev.Release(); err != nil {
		return fmt.Errorf("evdevcapture: release: %w", err)
	}
	c.grabbed = false
	return nil
}

// Run reads raw evdev events until ctx is cancelled, converting EV_KEY
// events to event.KeyEvent and sending them on Events. Unknown scan codes
// are still forwarded — with KeyCode set to keycode.Unknown — so the caller
// can apply passthrough policy rather than silently dropping input.
func (c *Capture) Run(ctx context.Context) error {
	defer close(c.Events)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		events, err := c.dev.Read()
		if err != nil {
			if strings.Contains(err.Error(), "resource temporarily unavailable") {
				continue
			}
			return fmt.Errorf("evdevcapture: read: %w", err)
		}

		for _, raw := range events {
			if raw.Type != evdev.EV_KEY {
				continue
			}
			// evdev key values: 0 = release, 1 = press, 2 = autorepeat.
			// Autorepeat carries no new information for this engine — the
			// tap-hold/modifier state machines only react to press/release
			// transitions — so it is dropped here.
			if raw.Value == 2 {
				continue
			}

			kc, _ := keycode.FromEvdev(uint16(raw.Code))
			ke := event.KeyEvent{
				KeyCode:     kc,
				TimestampUs: uint64(raw.Time.Sec)*1_000_000 + uint64(raw.Time.Usec),
				DeviceID:    c.deviceID,
			}
			if raw.Value == 1 {
				ke.Type = event.Press
			} else {
				ke.Type = event.Release
			}

			select {
			case c.Events <- ke:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Close releases the device and closes the underlying file.
func (c *Capture) Close() error {
	_ = c.Release()
	logger.Debugf("evdevcapture: closing device %s", c.deviceID)
	return c.dev.File.Close()
}
