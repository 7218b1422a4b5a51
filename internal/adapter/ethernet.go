package adapter

import (
	"fmt"
	"sort"

	"github.com/zerolugithub/gns3-server/internal/nio"
)

// EthernetAdapter is a simulated network interface with a fixed set of
// numbered ports. Each port optionally holds one transport binding.
//
// VPCS devices always carry a single adapter with one port, but the port
// bookkeeping is kept general so the iteration order of bindings (adapter
// then port) stays well defined.
type EthernetAdapter struct {
	ports map[int]nio.NIO // port id -> binding, nil while unbound
}

// NewEthernet creates an adapter with a single port, numbered 0.
func NewEthernet() *EthernetAdapter {
	return NewEthernetWithPorts(1)
}

// NewEthernetWithPorts creates an adapter with ports numbered 0..n-1.
func NewEthernetWithPorts(n int) *EthernetAdapter {
	ports := make(map[int]nio.NIO, n)
	for i := 0; i < n; i++ {
		ports[i] = nil
	}
	return &EthernetAdapter{ports: ports}
}

// PortExists reports whether the adapter has a port with the given id.
func (a *EthernetAdapter) PortExists(portID int) bool {
	_, ok := a.ports[portID]
	return ok
}

// AddNIO attaches a binding to a port.
// Returns ErrInvalidPort if the port does not exist.
func (a *EthernetAdapter) AddNIO(portID int, n nio.NIO) error {
	if !a.PortExists(portID) {
		return fmt.Errorf("%w: port %d", ErrInvalidPort, portID)
	}
	a.ports[portID] = n
	return nil
}

// RemoveNIO detaches and returns the binding on a port. The returned binding
// is nil when the port was unbound.
// Returns ErrInvalidPort if the port does not exist.
func (a *EthernetAdapter) RemoveNIO(portID int) (nio.NIO, error) {
	n, ok := a.ports[portID]
	if !ok {
		return nil, fmt.Errorf("%w: port %d", ErrInvalidPort, portID)
	}
	a.ports[portID] = nil
	return n, nil
}

// NIO returns the binding attached to a port, or nil if the port is unbound
// or does not exist.
func (a *EthernetAdapter) NIO(portID int) nio.NIO {
	return a.ports[portID]
}

// Ports returns the adapter's port ids in ascending order.
func (a *EthernetAdapter) Ports() []int {
	ids := make([]int, 0, len(a.ports))
	for id := range a.ports {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
