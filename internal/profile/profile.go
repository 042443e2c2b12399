// Package profile loads and manages named, per-device remapping profiles:
// hand-authored TOML rule files on disk, decoded into mapping.ConfigRoot.
// This is the loader boundary described in the core's failure-semantics
// contract — every configuration-time error (bad ID range, physical
// modifier used as a custom modifier, unknown key name, tap-hold registry
// exhaustion) is caught here, before a DeviceState ever sees the rules.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bnema/keyrd/internal/mapping"
)

// Info is the metadata list/get operations return about one profile.
type Info struct {
	Name       string
	DeviceCount int
	LayerCount int
	Active     bool
	ModifiedAt time.Time
}

// Manager owns a directory of <name>.toml profile files plus an ".active"
// marker file recording the currently-selected profile name.
type Manager struct {
	dir             string
	tapHoldCapacity int
}

// NewManager returns a Manager rooted at dir, creating it if absent.
// tapHoldCapacity is the daemon's configured per-device tap-hold registry
// size; Load rejects any profile declaring more distinct tap-hold keys than
// this for one device.
func NewManager(dir string, tapHoldCapacity int) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating profiles directory %s: %w", dir, err)
	}
	return &Manager{dir: dir, tapHoldCapacity: tapHoldCapacity}, nil
}

func (m *Manager) pathFor(name string) string {
	return filepath.Join(m.dir, name+".toml")
}

func (m *Manager) activeMarkerPath() string {
	return filepath.Join(m.dir, ".active")
}

// List returns every profile's metadata, sorted by name.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("reading profiles directory: %w", err)
	}

	active, _ := m.GetActive()

	var infos []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".toml")
		root, err := m.Load(name)
		if err != nil {
			continue
		}
		fi, err := e.Info()
		var modTime time.Time
		if err == nil {
			modTime = fi.ModTime()
		}
		infos = append(infos, Info{
			Name:        name,
			DeviceCount: len(root.Devices),
			LayerCount:  layerCount(root),
			Active:      name == active,
			ModifiedAt:  modTime,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func layerCount(root mapping.ConfigRoot) int {
	n := 0
	for _, d := range root.Devices {
		n += len(d.Mappings)
	}
	return n
}

// Get returns one profile's metadata.
func (m *Manager) Get(name string) (Info, error) {
	infos, err := m.List()
	if err != nil {
		return Info{}, err
	}
	for _, info := range infos {
		if info.Name == name {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("profile %q not found", name)
}

// GetActive returns the currently active profile's name, or "" if none is set.
func (m *Manager) GetActive() (string, error) {
	data, err := os.ReadFile(m.activeMarkerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading active profile marker: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Activate records name as the active profile, verifying it exists and
// parses first.
func (m *Manager) Activate(name string) error {
	if _, err := m.Load(name); err != nil {
		return fmt.Errorf("activating profile %q: %w", name, err)
	}
	if err := os.WriteFile(m.activeMarkerPath(), []byte(name+"\n"), 0644); err != nil {
		return fmt.Errorf("writing active profile marker: %w", err)
	}
	return nil
}

// Delete removes a profile's file. Deactivates it first if it was active.
func (m *Manager) Delete(name string) error {
	active, _ := m.GetActive()
	if active == name {
		_ = os.Remove(m.activeMarkerPath())
	}
	if err := os.Remove(m.pathFor(name)); err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	return nil
}

// SaveRoot writes root as a new or replacement profile file.
func (m *Manager) SaveRoot(name string, root mapping.ConfigRoot) error {
	f, err := os.Create(m.pathFor(name))
	if err != nil {
		return fmt.Errorf("creating profile %q: %w", name, err)
	}
	defer f.Close()

	doc := rootToTOML(root)
	enc := toml.NewEncoder(f)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding profile %q: %w", name, err)
	}
	return nil
}

// Load decodes profile name's TOML file into a mapping.ConfigRoot, applying
// every validation the core relies on never seeing fail at runtime.
func (m *Manager) Load(name string) (mapping.ConfigRoot, error) {
	path := m.pathFor(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return mapping.ConfigRoot{}, fmt.Errorf("reading profile %q: %w", name, err)
	}

	var doc tomlRoot
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		return mapping.ConfigRoot{}, fmt.Errorf("parsing profile %q: %w", name, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return mapping.ConfigRoot{}, fmt.Errorf("profile %q: unrecognized keys: %v", name, undecoded)
	}

	return tomlToRoot(doc, m.tapHoldCapacity)
}
