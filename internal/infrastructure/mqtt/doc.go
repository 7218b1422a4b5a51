// Package mqtt wraps paho.mqtt.golang for publishing device lifecycle
// events and server status to the platform's message bus.
//
// The server only publishes: device created/started/stopped/deleted events
// (see internal/events) and a retained online/offline status with a Last
// Will for unclean disconnects.
package mqtt
