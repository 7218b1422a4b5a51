package vpcs

import (
	"reflect"
	"testing"

	"github.com/zerolugithub/gns3-server/internal/identity"
	"github.com/zerolugithub/gns3-server/internal/nio"
)

func newTestDevice(t *testing.T, cfg DeviceConfig) *Device {
	t.Helper()

	if cfg.BaseDir == "" {
		cfg.BaseDir = t.TempDir()
	}

	allocator := identity.NewAllocator()
	d, err := New(cfg, allocator)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func mustUDP(t *testing.T, local, remote int, host string) *nio.UDP {
	t.Helper()
	n, err := nio.NewUDP(local, remote, host)
	if err != nil {
		t.Fatalf("NewUDP() error = %v", err)
	}
	return n
}

func mustTAP(t *testing.T, device string) *nio.TAP {
	t.Helper()
	n, err := nio.NewTAP(device)
	if err != nil {
		t.Fatalf("NewTAP() error = %v", err)
	}
	return n
}

func TestCommandUDPBinding(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{Path: "/usr/bin/vpcs", Console: 2000})

	// Force a known identity for a stable -m value.
	d.id = 5

	if err := d.SlotAddNIO(0, 0, mustUDP(t, 20001, 30001, "127.0.0.1")); err != nil {
		t.Fatalf("SlotAddNIO() error = %v", err)
	}

	want := []string{
		"/usr/bin/vpcs",
		"-p", "2000",
		"-s", "20001",
		"-c", "30001",
		"-t", "127.0.0.1",
		"-m", "5",
		"-i", "1",
	}
	got := d.Command()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Command() = %v, want %v", got, want)
	}
}

func TestCommandTAPBinding(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{Path: "/usr/bin/vpcs", Console: 2001})
	d.id = 1

	if err := d.SlotAddNIO(0, 0, mustTAP(t, "tap3")); err != nil {
		t.Fatalf("SlotAddNIO() error = %v", err)
	}

	want := []string{
		"/usr/bin/vpcs",
		"-p", "2001",
		"-e",
		"-m", "1",
		"-i", "1",
	}
	got := d.Command()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Command() = %v, want %v", got, want)
	}

	// The device name on the binding must not leak into the arguments.
	for _, arg := range got {
		if arg == "tap3" {
			t.Error("Command() contains the TAP device name")
		}
	}
}

func TestCommandNoBindings(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{Path: "/usr/bin/vpcs", Console: 2002})
	d.id = 7

	want := []string{"/usr/bin/vpcs", "-p", "2002", "-m", "7", "-i", "1"}
	if got := d.Command(); !reflect.DeepEqual(got, want) {
		t.Errorf("Command() = %v, want %v", got, want)
	}
}

func TestCommandScriptFileLast(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{
		Path:       "/usr/bin/vpcs",
		Console:    2003,
		ScriptFile: "startup.vpc",
	})

	if err := d.SlotAddNIO(0, 0, mustUDP(t, 20001, 30001, "10.0.0.1")); err != nil {
		t.Fatalf("SlotAddNIO() error = %v", err)
	}

	got := d.Command()
	if got[len(got)-1] != "startup.vpc" {
		t.Errorf("script file not last: %v", got)
	}
}

func TestCommandDeterministic(t *testing.T) {
	d := newTestDevice(t, DeviceConfig{Path: "/usr/bin/vpcs", Console: 2004})

	first := d.Command()
	for i := 0; i < 10; i++ {
		if got := d.Command(); !reflect.DeepEqual(got, first) {
			t.Fatalf("Command() not deterministic: %v vs %v", got, first)
		}
	}
}
