package adapter

import "errors"

// ErrInvalidPort is returned when a port id does not exist on the adapter.
var ErrInvalidPort = errors.New("adapter: invalid port")
