package telemetry

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteLifecycleEvent records a device lifecycle transition
// (created, started, stopped, deleted).
//
// The write is non-blocking; points are batched and sent asynchronously.
func (c *Client) WriteLifecycleEvent(device string, id int, event string) {
	c.WritePoint("vpcs_lifecycle",
		map[string]string{
			"device": device,
			"event":  event,
		},
		map[string]interface{}{
			"instance_id": id,
		},
	)
}

// WriteProbeResult records the outcome of a console liveness probe,
// including how long the probe took.
func (c *Client) WriteProbeResult(device string, id int, running bool, latency time.Duration) {
	c.WritePoint("vpcs_liveness",
		map[string]string{
			"device": device,
		},
		map[string]interface{}{
			"instance_id": id,
			"running":     running,
			"latency_ms":  float64(latency.Microseconds()) / 1000.0,
		},
	)
}

// WritePoint writes a point with full control over tags and fields.
// A no-op while disconnected.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, time.Now()))
}
