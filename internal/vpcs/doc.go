// Package vpcs manages the lifecycle of VPCS instances.
//
// A Device owns one pool identity, one working directory and one
// optional child process. The package covers the full lifecycle:
// identity allocation, command construction, process spawning with
// output capture, liveness probing over the console TCP port and
// cooperative shutdown via the console quit command.
//
// Usage:
//
//	allocator := identity.NewAllocator()
//	device, err := vpcs.New(vpcs.DeviceConfig{
//	    Path:    "/usr/bin/vpcs",
//	    BaseDir: "/var/lib/gns3",
//	    Console: 2000,
//	}, allocator)
//	if err != nil {
//	    return err
//	}
//	device.SetLogger(log)
//
//	if err := device.Start(); err != nil {
//	    return err
//	}
//	defer device.Stop()
//
// Liveness is defined by the console port: a device is running when its
// process handle exists and the console accepts a TCP connection. The
// same port carries the shutdown path; Stop sends "quit\n" and trusts
// the instance to exit.
//
// Device records persist in SQLite through Repository so configured
// devices survive a daemon restart. Pool identities are not persisted;
// they are reallocated on restore.
package vpcs
