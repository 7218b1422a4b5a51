package adapter

import (
	"errors"
	"testing"

	"github.com/zerolugithub/gns3-server/internal/nio"
)

func TestNewEthernet_SinglePort(t *testing.T) {
	a := NewEthernet()

	if !a.PortExists(0) {
		t.Error("PortExists(0) = false, want true")
	}
	if a.PortExists(1) {
		t.Error("PortExists(1) = true, want false")
	}
	if got := a.Ports(); len(got) != 1 || got[0] != 0 {
		t.Errorf("Ports() = %v, want [0]", got)
	}
}

func TestAddRemoveNIO(t *testing.T) {
	a := NewEthernet()
	udp, err := nio.NewUDP(20001, 30001, "127.0.0.1")
	if err != nil {
		t.Fatalf("NewUDP() error: %v", err)
	}

	if err := a.AddNIO(0, udp); err != nil {
		t.Fatalf("AddNIO() error: %v", err)
	}
	if got := a.NIO(0); got != nio.NIO(udp) {
		t.Errorf("NIO(0) = %v, want %v", got, udp)
	}

	removed, err := a.RemoveNIO(0)
	if err != nil {
		t.Fatalf("RemoveNIO() error: %v", err)
	}
	if removed != nio.NIO(udp) {
		t.Errorf("RemoveNIO() = %v, want %v", removed, udp)
	}
	if a.NIO(0) != nil {
		t.Error("NIO(0) != nil after removal")
	}
}

func TestInvalidPort(t *testing.T) {
	a := NewEthernet()
	udp, _ := nio.NewUDP(20001, 30001, "127.0.0.1")

	if err := a.AddNIO(3, udp); !errors.Is(err, ErrInvalidPort) {
		t.Errorf("AddNIO(3) error = %v, want ErrInvalidPort", err)
	}
	if _, err := a.RemoveNIO(3); !errors.Is(err, ErrInvalidPort) {
		t.Errorf("RemoveNIO(3) error = %v, want ErrInvalidPort", err)
	}
}

func TestPorts_Ordered(t *testing.T) {
	a := NewEthernetWithPorts(4)
	want := []int{0, 1, 2, 3}
	got := a.Ports()
	if len(got) != len(want) {
		t.Fatalf("Ports() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ports() = %v, want %v", got, want)
		}
	}
}
