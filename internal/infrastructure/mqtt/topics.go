package mqtt

import "fmt"

// Topic prefixes for the VPCS server's MQTT surface.
//
// Scheme: gns3/{category}/{emulator}/{device}
const (
	// TopicPrefix is the base for all server topics.
	TopicPrefix = "gns3"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "gns3/system"
)

// Topics provides builders for the server's MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
type Topics struct{}

// DeviceEvent returns the topic for lifecycle events of one device.
//
// Example: gns3/event/vpcs/pc-1
func (Topics) DeviceEvent(device string) string {
	return fmt.Sprintf("%s/event/vpcs/%s", TopicPrefix, device)
}

// SystemStatus returns the topic carrying the server's online/offline status.
//
// Example: gns3/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
