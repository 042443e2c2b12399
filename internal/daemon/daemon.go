// Package daemon wires one configured device's capture driver, lookup
// index, device state, and the event pipeline into a running event loop,
// including the periodic check_timeouts tick the tap-hold processor needs.
package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/keyrd/internal/driver/evdevcapture"
	"github.com/bnema/keyrd/internal/driver/uinputinject"
	"github.com/bnema/keyrd/internal/logger"
	"github.com/bnema/keyrd/internal/lookup"
	"github.com/bnema/keyrd/internal/mapping"
	"github.com/bnema/keyrd/internal/pipeline"
	"github.com/bnema/keyrd/internal/state"
)

// Device is one running device's capture + remapping + injection pipeline.
// Reloading a device's config replaces its (index, state) pair atomically;
// see Reload.
type Device struct {
	mu         sync.RWMutex
	identifier string
	profile    string
	capture    *evdevcapture.Capture
	injector   *uinputinject.Injector
	index      *lookup.Index
	state      *state.DeviceState
}

// NewDevice opens path for capture, builds the lookup index from cfg, and
// creates a dedicated virtual keyboard for this device's output.
func NewDevice(identifier, path, profileName string, cfg mapping.DeviceConfig, tapHoldCapacity int) (*Device, error) {
	cap, err := evdevcapture.Open(path, identifier)
	if err != nil {
		return nil, err
	}
	inj, err := uinputinject.New("keyrd " + identifier)
	if err != nil {
		cap.Close()
		return nil, fmt.Errorf("daemon: creating injector for %s: %w", identifier, err)
	}
	return &Device{
		identifier: identifier,
		profile:    profileName,
		capture:    cap,
		injector:   inj,
		index:      lookup.Build(cfg),
		state:      state.New(tapHoldCapacity),
	}, nil
}

// Reload atomically swaps in a newly built index and a fresh DeviceState.
// Per the core's driver-level contract, callers must ensure all physical
// keys are released before calling Reload, or stale press-tracking entries
// will linger in the discarded state with no corresponding release.
func (d *Device) Reload(profileName string, cfg mapping.DeviceConfig, tapHoldCapacity int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profile = profileName
	d.index = lookup.Build(cfg)
	d.state = state.New(tapHoldCapacity)
}

// Run grabs the physical device exclusively and drives its event loop until
// ctx is cancelled: captured events flow through process_event and out
// through the injector, while a ticker periodically calls check_timeouts.
func (d *Device) Run(ctx context.Context, tickInterval time.Duration) error {
	if err := d.capture.Grab(); err != nil {
		return err
	}

	go func() {
		if err := d.capture.Run(ctx); err != nil {
			logger.Errorf("daemon: capture for %s stopped: %v", d.identifier, err)
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return d.Close()

		case ev, ok := <-d.capture.Events:
			if !ok {
				return nil
			}
			d.mu.RLock()
			outputs := pipeline.ProcessEvent(ev, d.index, d.state)
			d.mu.RUnlock()
			if err := d.injector.InjectAll(outputs); err != nil {
				logger.Errorf("daemon: injecting events for %s: %v", d.identifier, err)
			}

		case now := <-ticker.C:
			d.mu.RLock()
			outputs := pipeline.CheckTimeouts(uint64(now.UnixMicro()), d.state)
			d.mu.RUnlock()
			if err := d.injector.InjectAll(outputs); err != nil {
				logger.Errorf("daemon: injecting timeout events for %s: %v", d.identifier, err)
			}
		}
	}
}

// Close releases the device's capture handle and virtual keyboard.
func (d *Device) Close() error {
	capErr := d.capture.Close()
	injErr := d.injector.Close()
	if capErr != nil {
		return capErr
	}
	return injErr
}
