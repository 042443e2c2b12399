package evdevcapture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "event3")
	if err := os.WriteFile(target, nil, 0644); err != nil {
		t.Fatalf("creating symlink target: %v", err)
	}

	link := filepath.Join(dir, "usb-Some_Keyboard-event-kbd")
	if err := os.Symlink("../event3", link); err != nil {
		t.Fatalf("creating symlink: %v", err)
	}

	got, err := resolveSymlink(link)
	if err != nil {
		t.Fatalf("resolveSymlink: %v", err)
	}
	if got != "/dev/input/event3" {
		t.Errorf("resolveSymlink(%q) = %q, want %q", link, got, "/dev/input/event3")
	}
}

func TestResolveSymlinkMissing(t *testing.T) {
	if _, err := resolveSymlink("/nonexistent/path"); err == nil {
		t.Error("expected an error resolving a nonexistent symlink")
	}
}

// TestListKeyboards exercises the real /dev/input enumeration where
// available; it is environment-dependent (requires evdev device nodes) so it
// only asserts that enumeration does not error, skipping entirely when the
// expected directories are absent (e.g. inside a container with no input
// subsystem).
func TestListKeyboards(t *testing.T) {
	if _, err := os.Stat("/dev/input"); os.IsNotExist(err) {
		t.Skip("/dev/input does not exist in this environment")
	}
	if _, err := ListKeyboards(); err != nil {
		t.Errorf("ListKeyboards: %v", err)
	}
}
