package vpcs

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// consoleQuitCommand is the literal the VPCS console interprets as an
// orderly shutdown request.
const consoleQuitCommand = "quit\n"

// defaultProbeTimeout bounds console dials so a black-holed host cannot
// stall device operations.
const defaultProbeTimeout = 3 * time.Second

// ConsoleProber talks to the TCP console a VPCS instance listens on.
//
// Probe reports whether anything accepts connections on the console
// port. A foreign listener on the same port is indistinguishable from a
// live instance; callers accept that false positive.
type ConsoleProber interface {
	Probe(host string, port int) bool
	SignalQuit(host string, port int) error
}

// ConsoleClient is the TCP implementation of ConsoleProber.
type ConsoleClient struct {
	Timeout time.Duration
}

// NewConsoleClient returns a client with the given dial timeout. A zero
// timeout falls back to the default.
func NewConsoleClient(timeout time.Duration) *ConsoleClient {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &ConsoleClient{Timeout: timeout}
}

// Probe attempts a TCP connection to the console and closes it
// immediately. Any dial error means "not running".
func (c *ConsoleClient) Probe(host string, port int) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), c.Timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// SignalQuit connects to the console and sends the quit command. The
// instance exits on its own once the command is processed; SignalQuit
// does not wait for that.
func (c *ConsoleClient) SignalQuit(host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", addr, c.Timeout)
	if err != nil {
		return fmt.Errorf("could not connect to console %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(c.Timeout)); err != nil {
		return fmt.Errorf("could not set write deadline on console %s: %w", addr, err)
	}
	if _, err := conn.Write([]byte(consoleQuitCommand)); err != nil {
		return fmt.Errorf("could not send quit command to console %s: %w", addr, err)
	}

	return nil
}
