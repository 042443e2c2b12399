package daemon

import (
	"path/filepath"
	"testing"

	"github.com/bnema/keyrd/internal/config"
	"github.com/bnema/keyrd/internal/mapping"
)

func TestDeviceConfigForMatch(t *testing.T) {
	root := mapping.ConfigRoot{Devices: []mapping.DeviceConfig{
		{Identifier: "kbd0", Mappings: []mapping.KeyMapping{mapping.NewBase(mapping.NewSimple(1, 2))}},
		{Identifier: "kbd1"},
	}}

	got := deviceConfigFor(root, "kbd1")
	if got.Identifier != "kbd1" {
		t.Errorf("deviceConfigFor(kbd1) = %+v", got)
	}
}

func TestDeviceConfigForNoMatchReturnsEmptyPassthrough(t *testing.T) {
	root := mapping.ConfigRoot{Devices: []mapping.DeviceConfig{{Identifier: "kbd0"}}}

	got := deviceConfigFor(root, "kbd-unknown")
	if got.Identifier != "kbd-unknown" || len(got.Mappings) != 0 {
		t.Errorf("deviceConfigFor for an unbound identifier = %+v, want an empty passthrough config", got)
	}
}

func TestNewManagerCreatesProfilesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	m, err := NewManager(config.DaemonConfig{ProfilesDir: dir, TapHoldN: 8})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if len(m.ActiveDevices()) != 0 {
		t.Errorf("expected a fresh Manager to have no active devices, got %v", m.ActiveDevices())
	}
}
