package vpcs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zerolugithub/gns3-server/internal/adapter"
	"github.com/zerolugithub/gns3-server/internal/identity"
	"github.com/zerolugithub/gns3-server/internal/nio"
	"github.com/zerolugithub/gns3-server/internal/process"
)

// Logger is the interface for logging within the vpcs package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// logFileName is the file inside the working directory that captures the
// instance's combined stdout and stderr.
const logFileName = "vpcs.log"

// DeviceConfig carries the construction parameters for a Device.
type DeviceConfig struct {
	// Path is the VPCS executable.
	Path string

	// BaseDir is the root under which the per-device working directory
	// is created.
	BaseDir string

	// Host is the address the console listens on. Defaults to 127.0.0.1.
	Host string

	// Name identifies the device. Defaults to "vpcs<id>".
	Name string

	// Console is the TCP port of the instance's console. Zero means the
	// device cannot be probed or stopped cooperatively until set.
	Console int

	// ScriptFile is an optional startup script passed as the trailing
	// argument to the executable.
	ScriptFile string

	// Emitter receives lifecycle events, starting with the created
	// event New sends once construction succeeds. Optional; it can
	// also be set later with SetEmitter, at the cost of missing the
	// created event.
	Emitter Emitter
}

// Device is a single managed VPCS instance. All operations are safe for
// concurrent use; Start, Stop, Delete and the setters serialize on one
// per-device mutex so overlapping calls cannot interleave their steps.
type Device struct {
	mu sync.Mutex

	id         int
	name       string
	path       string
	host       string
	console    int
	scriptFile string
	workingDir string
	stdoutPath string

	adapters []*adapter.EthernetAdapter

	started bool
	deleted bool
	proc    *process.Handle

	allocator *identity.Allocator
	prober    ConsoleProber
	emitter   Emitter
	logger    Logger
}

// New allocates an identity from the pool and returns a device bound to
// it. The per-device working directory <BaseDir>/vpcs/device-<id> is
// created immediately. On any failure the identity is released.
func New(cfg DeviceConfig, allocator *identity.Allocator) (*Device, error) {
	id, err := allocator.Allocate()
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("vpcs%d", id)
	}
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}

	d := &Device{
		id:         id,
		name:       name,
		path:       cfg.Path,
		host:       host,
		console:    cfg.Console,
		scriptFile: cfg.ScriptFile,
		adapters:   []*adapter.EthernetAdapter{adapter.NewEthernet()},
		allocator:  allocator,
		prober:     NewConsoleClient(defaultProbeTimeout),
		emitter:    noopEmitter{},
		logger:     noopLogger{},
	}
	if cfg.Emitter != nil {
		d.emitter = cfg.Emitter
	}

	if err := d.SetWorkingDir(cfg.BaseDir); err != nil {
		allocator.Release(id)
		return nil, err
	}

	d.emitter.Emit(Event{
		Type:   EventCreated,
		Device: d.name,
		ID:     d.id,
		Time:   time.Now().UTC(),
	})
	return d, nil
}

// SetLogger sets the logger for the device.
func (d *Device) SetLogger(logger Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if logger != nil {
		d.logger = logger
	}
}

// SetEmitter sets the lifecycle event emitter for the device.
func (d *Device) SetEmitter(emitter Emitter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if emitter != nil {
		d.emitter = emitter
	}
}

// SetProber replaces the console prober. Tests use this to avoid real
// TCP dials.
func (d *Device) SetProber(prober ConsoleProber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if prober != nil {
		d.prober = prober
	}
}

// ID returns the pool identity of the device.
func (d *Device) ID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// Name returns the device name.
func (d *Device) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// SetName renames the device.
func (d *Device) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger.Info("vpcs device renamed", "id", d.id, "old", d.name, "new", name)
	d.name = name
}

// Path returns the VPCS executable path.
func (d *Device) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// SetPath changes the VPCS executable used on the next Start.
func (d *Device) SetPath(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.path = path
}

// Host returns the console host address.
func (d *Device) Host() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.host
}

// Console returns the console TCP port.
func (d *Device) Console() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.console
}

// SetConsole changes the console TCP port. The new value takes effect on
// the next Start; a running instance keeps listening on the old port.
func (d *Device) SetConsole(port int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger.Info("vpcs console port changed", "id", d.id, "old", d.console, "new", port)
	d.console = port
}

// ScriptFile returns the startup script path, or the empty string when
// none is configured.
func (d *Device) ScriptFile() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scriptFile
}

// SetScriptFile changes the startup script passed to the executable.
func (d *Device) SetScriptFile(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scriptFile = path
}

// WorkingDir returns the per-device working directory.
func (d *Device) WorkingDir() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.workingDir
}

// SetWorkingDir derives the working directory <baseDir>/vpcs/device-<id>
// and creates it. Creation is idempotent.
func (d *Device) SetWorkingDir(baseDir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dir := filepath.Join(baseDir, "vpcs", fmt.Sprintf("device-%d", d.id))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create working directory %s: %w", dir, err)
	}
	d.workingDir = dir
	return nil
}

// Started reports whether the device believes it launched a process. It
// does not probe the console; use IsRunning for a live check.
func (d *Device) Started() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// Defaults is the settings snapshot of a device.
type Defaults struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	ScriptFile string `json:"script_file"`
	Console    int    `json:"console"`
}

// Defaults returns the current settings of the device.
func (d *Device) Defaults() Defaults {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Defaults{
		Name:       d.name,
		Path:       d.path,
		ScriptFile: d.scriptFile,
		Console:    d.console,
	}
}

// Command returns the full argument vector that Start would spawn,
// including the executable as the first element.
func (d *Device) Command() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buildCommandLocked()
}

// Start launches the VPCS process. Starting a device whose console
// already answers is a no-op. The executable is validated before the
// spawn; validation failures map to ErrNotAccessible or
// ErrNotExecutable and a failed spawn maps to ErrLaunchFailed with any
// captured output appended.
func (d *Device) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deleted {
		return fmt.Errorf("%w: %s", ErrDeviceDeleted, d.name)
	}
	if d.isRunningLocked() {
		d.logger.Debug("vpcs instance already running", "id", d.id)
		return nil
	}

	info, err := os.Stat(d.path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAccessible, d.path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s", ErrNotExecutable, d.path)
	}

	command := d.buildCommandLocked()
	d.stdoutPath = filepath.Join(d.workingDir, logFileName)

	d.logger.Info("starting vpcs instance",
		"id", d.id,
		"name", d.name,
		"command", command,
	)

	handle, err := process.Start(d.path, command[1:], d.workingDir, d.stdoutPath)
	if err != nil {
		output := d.readOutputLocked()
		if output != "" {
			return fmt.Errorf("%w: %s: %v\n%s", ErrLaunchFailed, d.path, err, output)
		}
		return fmt.Errorf("%w: %s: %v", ErrLaunchFailed, d.path, err)
	}

	d.proc = handle
	d.started = true
	d.logger.Info("vpcs instance started",
		"id", d.id,
		"pid", handle.PID(),
		"log", handle.LogPath(),
	)
	d.emitter.Emit(Event{
		Type:   EventStarted,
		Device: d.name,
		ID:     d.id,
		PID:    handle.PID(),
		Time:   time.Now().UTC(),
	})
	return nil
}

// Stop shuts the instance down by sending quit over the console. The
// process handle is dropped and the device marked stopped regardless of
// whether the command could be delivered; a hung instance is left for
// the operating system.
func (d *Device) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Device) stopLocked() {
	wasStarted := d.started

	if d.isRunningLocked() {
		d.logger.Info("stopping vpcs instance", "id", d.id, "pid", d.proc.PID())
		if err := d.prober.SignalQuit(d.host, d.console); err != nil {
			d.logger.Warn("could not deliver quit command", "id", d.id, "error", err)
		}
	}

	d.proc = nil
	d.started = false

	if wasStarted {
		d.emitter.Emit(Event{
			Type:   EventStopped,
			Device: d.name,
			ID:     d.id,
			Time:   time.Now().UTC(),
		})
	}
}

// IsRunning reports whether the instance is alive. Liveness means a
// process handle exists and the console port accepts connections.
func (d *Device) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isRunningLocked()
}

func (d *Device) isRunningLocked() bool {
	if d.proc == nil {
		return false
	}
	return d.prober.Probe(d.host, d.console)
}

// ReadVPCSOutput returns whatever the instance wrote to its log file.
// Read errors yield the empty string; output capture is best effort.
func (d *Device) ReadVPCSOutput() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readOutputLocked()
}

func (d *Device) readOutputLocked() string {
	if d.stdoutPath == "" {
		return ""
	}
	data, err := os.ReadFile(d.stdoutPath)
	if err != nil {
		d.logger.Warn("could not read vpcs output", "id", d.id, "path", d.stdoutPath, "error", err)
		return ""
	}
	return string(data)
}

// Delete stops the instance, returns the identity to the pool and marks
// the device unusable. Further Start calls fail with ErrDeviceDeleted.
// Delete is idempotent.
func (d *Device) Delete() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.deleted {
		return
	}

	d.stopLocked()
	d.allocator.Release(d.id)
	d.deleted = true

	d.logger.Info("vpcs device deleted", "id", d.id, "name", d.name)
	d.emitter.Emit(Event{
		Type:   EventDeleted,
		Device: d.name,
		ID:     d.id,
		Time:   time.Now().UTC(),
	})
}

// SlotAddNIO attaches a network binding to a port of the adapter in the
// given slot.
func (d *Device) SlotAddNIO(slotID, portID int, n nio.NIO) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, err := d.adapterLocked(slotID)
	if err != nil {
		return err
	}
	if err := a.AddNIO(portID, n); err != nil {
		return fmt.Errorf("%w: port %d doesn't exist on adapter in slot %d of vpcs %s", ErrInvalidPort, portID, slotID, d.name)
	}

	d.logger.Info("vpcs binding attached",
		"id", d.id,
		"slot", slotID,
		"port", portID,
		"nio", n.String(),
	)
	return nil
}

// SlotRemoveNIO detaches and returns the binding on a port of the
// adapter in the given slot.
func (d *Device) SlotRemoveNIO(slotID, portID int) (nio.NIO, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, err := d.adapterLocked(slotID)
	if err != nil {
		return nil, err
	}
	n, err := a.RemoveNIO(portID)
	if err != nil {
		return nil, fmt.Errorf("%w: port %d doesn't exist on adapter in slot %d of vpcs %s", ErrInvalidPort, portID, slotID, d.name)
	}

	d.logger.Info("vpcs binding detached", "id", d.id, "slot", slotID, "port", portID)
	return n, nil
}

func (d *Device) adapterLocked(slotID int) (*adapter.EthernetAdapter, error) {
	if slotID < 0 || slotID >= len(d.adapters) {
		return nil, fmt.Errorf("%w: slot %d doesn't exist on vpcs %s", ErrInvalidSlot, slotID, d.name)
	}
	return d.adapters[slotID], nil
}
