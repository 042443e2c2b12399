package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/driver/evdevcapture"
	"github.com/bnema/keyrd/internal/logger"
	"github.com/bnema/keyrd/internal/mapping"
	"github.com/bnema/keyrd/internal/profile"
)

// Manager runs every enabled device binding from config.Config concurrently,
// one Device event loop goroutine each.
type Manager struct {
	profiles *profile.Manager
	cfg      config.DaemonConfig

	mu      sync.Mutex
	devices map[string]*Device
}

// NewManager builds a Manager backed by profiles at cfg.ProfilesDir.
func NewManager(cfg config.DaemonConfig) (*Manager, error) {
	profiles, err := profile.NewManager(cfg.ProfilesDir, cfg.TapHoldN)
	if err != nil {
		return nil, err
	}
	return &Manager{
		profiles: profiles,
		cfg:      cfg,
		devices:  make(map[string]*Device),
	}, nil
}

// Run starts every enabled, resolvable device binding and blocks until ctx
// is cancelled, then closes them all.
func (m *Manager) Run(ctx context.Context, bindings []config.DeviceConfig) error {
	keyboards, err := evdevcapture.ListKeyboards()
	if err != nil {
		return fmt.Errorf("daemon: enumerating keyboards: %w", err)
	}
	pathByIdentifier := make(map[string]string, len(keyboards))
	for _, k := range keyboards {
		pathByIdentifier[k.Name] = k.Path
	}

	var wg sync.WaitGroup
	for _, binding := range bindings {
		if !binding.Enabled {
			continue
		}
		path, ok := pathByIdentifier[binding.Identifier]
		if !ok {
			logger.Warnf("daemon: device %q not found among connected keyboards, skipping", binding.Identifier)
			continue
		}

		root, err := m.profiles.Load(binding.Profile)
		if err != nil {
			logger.Errorf("daemon: loading profile %q for device %q: %v", binding.Profile, binding.Identifier, err)
			continue
		}
		devCfg := deviceConfigFor(root, binding.Identifier)

		dev, err := NewDevice(binding.Identifier, path, binding.Profile, devCfg, m.cfg.TapHoldN)
		if err != nil {
			logger.Errorf("daemon: starting device %q: %v", binding.Identifier, err)
			continue
		}

		m.mu.Lock()
		m.devices[binding.Identifier] = dev
		m.mu.Unlock()

		wg.Add(1)
		go func(id string, d *Device) {
			defer wg.Done()
			tick := time.Duration(m.cfg.TickIntervalMs) * time.Millisecond
			if err := d.Run(ctx, tick); err != nil {
				logger.Errorf("daemon: device %q stopped: %v", id, err)
			}
		}(binding.Identifier, dev)
	}

	wg.Wait()
	return nil
}

// ActiveDevices returns the identifiers of every device currently running.
func (m *Manager) ActiveDevices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.devices))
	for id := range m.devices {
		ids = append(ids, id)
	}
	return ids
}

// deviceConfigFor returns the DeviceConfig matching identifier within root,
// or an empty (no-op) config if the profile has no entry for this device —
// every key then passes through unmodified.
func deviceConfigFor(root mapping.ConfigRoot, identifier string) mapping.DeviceConfig {
	for _, d := range root.Devices {
		if d.Identifier == identifier {
			return d
		}
	}
	return mapping.DeviceConfig{Identifier: identifier}
}
