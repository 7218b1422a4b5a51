package mqtt

import (
	"errors"
	"strings"
	"testing"

	"github.com/zerolugithub/gns3-server/internal/infrastructure/config"
)

func TestPublish_Validation(t *testing.T) {
	c := &Client{} // never connected

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{name: "empty topic", topic: "", wantErr: ErrInvalidTopic},
		{name: "bad qos", topic: "gns3/event/vpcs/pc-1", qos: 3, wantErr: ErrInvalidQoS},
		{name: "oversized payload", topic: "gns3/event/vpcs/pc-1", payload: make([]byte, maxPayloadSize+1), wantErr: ErrPublishFailed},
		{name: "not connected", topic: "gns3/event/vpcs/pc-1", payload: []byte("{}"), qos: 1, wantErr: ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTopics(t *testing.T) {
	topics := Topics{}

	if got := topics.DeviceEvent("pc-1"); got != "gns3/event/vpcs/pc-1" {
		t.Errorf("DeviceEvent() = %q", got)
	}
	if got := topics.SystemStatus(); got != "gns3/system/status" {
		t.Errorf("SystemStatus() = %q", got)
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     8883,
			TLS:      true,
			ClientID: "gns3-vpcs",
		},
		Auth: config.MQTTAuthConfig{Username: "user", Password: "pass"},
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("len(Servers) = %d, want 1", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "ssl://broker.local:8883" {
		t.Errorf("broker URL = %q, want ssl://broker.local:8883", got)
	}
	if opts.ClientID != "gns3-vpcs" {
		t.Errorf("ClientID = %q", opts.ClientID)
	}
	if opts.Username != "user" {
		t.Errorf("Username = %q", opts.Username)
	}
	if !opts.AutoReconnect {
		t.Error("AutoReconnect = false, want true")
	}
}

func TestBuildStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("gns3-vpcs")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload = %q", online)
	}
	offline := buildOfflinePayload("gns3-vpcs")
	if !strings.Contains(offline, `"graceful_shutdown"`) {
		t.Errorf("offline payload = %q", offline)
	}
}
