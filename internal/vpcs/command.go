package vpcs

import (
	"strconv"

	"github.com/zerolugithub/gns3-server/internal/nio"
)

// buildCommandLocked assembles the VPCS argument vector. Callers hold
// the device mutex.
//
// The layout is fixed:
//
//	<path> -p <console> [per-binding flags...] -m <id> -i 1 [scriptfile]
//
// Flags understood by the executable:
//
//	-p port    console TCP port
//	-s port    local UDP source port
//	-c port    remote UDP destination port
//	-t host    remote UDP destination host
//	-e         use a TAP interface instead of UDP
//	-m id      MAC address offset, derived from the pool identity
//	-i n       number of PC instances inside the process
//
// The executable picks its own TAP device; a configured device name on
// the binding cannot be forwarded.
func (d *Device) buildCommandLocked() []string {
	command := []string{d.path}
	command = append(command, "-p", strconv.Itoa(d.console))

	for _, a := range d.adapters {
		for _, portID := range a.Ports() {
			switch n := a.NIO(portID).(type) {
			case *nio.UDP:
				command = append(command,
					"-s", strconv.Itoa(n.LocalPort),
					"-c", strconv.Itoa(n.RemotePort),
					"-t", n.RemoteHost,
				)
			case *nio.TAP:
				command = append(command, "-e")
			}
		}
	}

	command = append(command, "-m", strconv.Itoa(d.id))
	command = append(command, "-i", "1")

	if d.scriptFile != "" {
		command = append(command, d.scriptFile)
	}
	return command
}
