package nio

import (
	"errors"
	"testing"
)

func TestNewUDP(t *testing.T) {
	tests := []struct {
		name       string
		localPort  int
		remotePort int
		remoteHost string
		wantErr    bool
	}{
		{name: "valid", localPort: 20001, remotePort: 30001, remoteHost: "127.0.0.1"},
		{name: "local port zero", localPort: 0, remotePort: 30001, remoteHost: "127.0.0.1", wantErr: true},
		{name: "remote port too large", localPort: 20001, remotePort: 70000, remoteHost: "127.0.0.1", wantErr: true},
		{name: "empty host", localPort: 20001, remotePort: 30001, remoteHost: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewUDP(tt.localPort, tt.remotePort, tt.remoteHost)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBinding) {
					t.Fatalf("NewUDP() error = %v, want ErrInvalidBinding", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewUDP() error: %v", err)
			}
			if n.LocalPort != tt.localPort || n.RemotePort != tt.remotePort || n.RemoteHost != tt.remoteHost {
				t.Errorf("NewUDP() = %+v", n)
			}
		})
	}
}

func TestNewTAP(t *testing.T) {
	n, err := NewTAP("tap0")
	if err != nil {
		t.Fatalf("NewTAP() error: %v", err)
	}
	if n.Device != "tap0" {
		t.Errorf("Device = %q, want %q", n.Device, "tap0")
	}

	if _, err := NewTAP(""); !errors.Is(err, ErrInvalidBinding) {
		t.Errorf("NewTAP(\"\") error = %v, want ErrInvalidBinding", err)
	}
}

func TestNIO_SumType(t *testing.T) {
	udp, _ := NewUDP(20001, 30001, "127.0.0.1")
	tap, _ := NewTAP("tap0")

	for _, n := range []NIO{udp, tap} {
		switch n.(type) {
		case *UDP, *TAP:
		default:
			t.Errorf("unexpected NIO type %T", n)
		}
	}
}
