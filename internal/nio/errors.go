package nio

import "errors"

// ErrInvalidBinding is returned when a binding is constructed with an
// out-of-range port or an empty host/device name.
var ErrInvalidBinding = errors.New("nio: invalid binding")
