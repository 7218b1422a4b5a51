package nio

import "fmt"

// NIO is a transport binding attached to an adapter port.
//
// It is a closed sum over the transports the VPCS executable understands:
// UDP tunnels and TAP devices. Consumers switch exhaustively on the concrete
// type; the unexported marker method keeps the set closed.
type NIO interface {
	fmt.Stringer
	isNIO()
}

// UDP is a UDP tunnel binding. VPCS sends frames from LocalPort to
// RemoteHost:RemotePort and receives on LocalPort.
type UDP struct {
	LocalPort  int
	RemotePort int
	RemoteHost string
}

// NewUDP creates a UDP tunnel binding after validating the endpoints.
func NewUDP(localPort, remotePort int, remoteHost string) (*UDP, error) {
	if err := validPort(localPort, "local port"); err != nil {
		return nil, err
	}
	if err := validPort(remotePort, "remote port"); err != nil {
		return nil, err
	}
	if remoteHost == "" {
		return nil, fmt.Errorf("%w: remote host is empty", ErrInvalidBinding)
	}
	return &UDP{
		LocalPort:  localPort,
		RemotePort: remotePort,
		RemoteHost: remoteHost,
	}, nil
}

func (*UDP) isNIO() {}

func (n *UDP) String() string {
	return fmt.Sprintf("udp tunnel %d -> %s:%d", n.LocalPort, n.RemoteHost, n.RemotePort)
}

// TAP is a TAP device binding.
//
// The device name is stored but never passed to the VPCS executable, which
// only supports its default /dev/tapX selection (-e). Known limitation.
type TAP struct {
	Device string
}

// NewTAP creates a TAP binding.
func NewTAP(device string) (*TAP, error) {
	if device == "" {
		return nil, fmt.Errorf("%w: tap device name is empty", ErrInvalidBinding)
	}
	return &TAP{Device: device}, nil
}

func (*TAP) isNIO() {}

func (n *TAP) String() string {
	return fmt.Sprintf("tap device %s", n.Device)
}

func validPort(port int, label string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %s %d out of range", ErrInvalidBinding, label, port)
	}
	return nil
}
