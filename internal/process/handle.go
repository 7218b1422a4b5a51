package process

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
)

// logFileMode is the permission mode for captured output files.
const logFileMode = 0644

// Handle is a spawned external process.
//
// Unlike a daemon supervisor there is no restart loop here: the caller owns
// the lifecycle and stops the process through its own control channel. The
// handle's job is to spawn with the right working directory, capture combined
// stdout/stderr into a log file, and reap the child when it exits.
type Handle struct {
	cmd     *exec.Cmd
	logPath string

	mu      sync.Mutex
	done    chan struct{}
	exitErr error
}

// Start spawns binary with args, working directory workDir, and stdout and
// stderr both redirected to a truncated file at logPath.
//
// The child is placed in its own process group so stray signals to the parent
// do not reach it. A reaper goroutine collects the exit status; Done and
// ExitErr expose it.
func Start(binary string, args []string, workDir, logPath string) (*Handle, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", logPath, err)
	}

	cmd := exec.Command(binary, args...)
	cmd.Dir = workDir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("starting %s: %w", binary, err)
	}

	// The child holds its own copy of the descriptor.
	logFile.Close()

	h := &Handle{
		cmd:     cmd,
		logPath: logPath,
		done:    make(chan struct{}),
	}

	go h.reap()

	return h, nil
}

// reap waits for the child so it never lingers as a zombie.
func (h *Handle) reap() {
	err := h.cmd.Wait()
	h.mu.Lock()
	h.exitErr = err
	h.mu.Unlock()
	close(h.done)
}

// PID returns the process id of the child.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// LogPath returns the path of the captured output file.
func (h *Handle) LogPath() string {
	return h.logPath
}

// Done returns a channel that is closed once the child has exited and been
// reaped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ExitErr returns the error from waiting on the child. It is only meaningful
// after Done is closed; before that it returns nil.
func (h *Handle) ExitErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitErr
}
