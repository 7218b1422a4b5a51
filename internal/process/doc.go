// Package process spawns and reaps the external simulator executables that
// the server manages.
//
// Each VPCS instance runs as one child process with its combined
// stdout/stderr captured into a log file inside the device's working
// directory. The package deliberately has no restart or signal logic:
// devices are stopped cooperatively over their TCP console, so callers only
// need spawn, capture, and reap.
//
// Example usage:
//
//	h, err := process.Start("/usr/bin/vpcs",
//	    []string{"-p", "2000", "-m", "1", "-i", "1"},
//	    workDir, filepath.Join(workDir, "vpcs.log"))
//	if err != nil {
//	    return err
//	}
//	log.Info("vpcs started", "pid", h.PID())
package process
