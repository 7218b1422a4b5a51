// Package telemetry records device metrics to InfluxDB.
//
// The server samples device liveness periodically and records lifecycle
// transitions, giving operators a time series of which simulated PCs were
// up and how fast their consoles answered. Telemetry is optional; when
// disabled the daemon simply never constructs a client.
package telemetry
