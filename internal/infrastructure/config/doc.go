// Package config loads and validates the server's YAML configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file, then
// environment variables (GNS3VPCS_*) for values that should not live in a
// file, such as broker credentials and telemetry tokens.
package config
