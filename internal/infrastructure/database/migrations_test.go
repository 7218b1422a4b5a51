package database

import (
	"testing"
)

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		in          string
		wantVersion string
		wantName    string
		wantUp      bool
		wantOK      bool
	}{
		{"20260815_000000_create_devices.up.sql", "20260815_000000", "create_devices", true, true},
		{"20260815_000000_create_devices.down.sql", "20260815_000000", "create_devices", false, true},
		{"README.md", "", "", false, false},
		{"bad.sql", "", "", false, false},
	}

	for _, tt := range tests {
		version, name, isUp, ok := parseMigrationFilename(tt.in)
		if version != tt.wantVersion || name != tt.wantName || isUp != tt.wantUp || ok != tt.wantOK {
			t.Errorf("parseMigrationFilename(%q) = (%q, %q, %v, %v), want (%q, %q, %v, %v)",
				tt.in, version, name, isUp, ok, tt.wantVersion, tt.wantName, tt.wantUp, tt.wantOK)
		}
	}
}
