package vpcs

import "errors"

// Domain errors for the vpcs package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, vpcs.ErrInvalidPort) {
//	    // handle bad port id
//	}
var (
	// ErrNotAccessible is returned when the VPCS executable does not exist
	// or cannot be read.
	ErrNotAccessible = errors.New("vpcs: image is not accessible")

	// ErrNotExecutable is returned when the VPCS executable lacks execute
	// permission.
	ErrNotExecutable = errors.New("vpcs: image is not executable")

	// ErrLaunchFailed is returned when spawning the VPCS process fails.
	// The message carries the OS error and any captured output.
	ErrLaunchFailed = errors.New("vpcs: could not start instance")

	// ErrInvalidSlot is returned when a slot id is out of range for the
	// device's adapter list.
	ErrInvalidSlot = errors.New("vpcs: invalid slot")

	// ErrInvalidPort is returned when a port id does not exist on the
	// resolved adapter.
	ErrInvalidPort = errors.New("vpcs: invalid port")

	// ErrDeviceDeleted is returned when starting a device after Delete.
	// The identity may already belong to another instance, so a restart
	// would collide on the MAC address offset.
	ErrDeviceDeleted = errors.New("vpcs: device has been deleted")

	// ErrRecordNotFound is returned when a persisted device record does
	// not exist.
	ErrRecordNotFound = errors.New("vpcs: device record not found")
)
