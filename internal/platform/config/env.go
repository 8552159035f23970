// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix namespaces every environment variable read by boardwalk commands.
const Prefix = "BOARDWALK_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithDefaults loads configuration with an explicit environment map,
// falling back to the process environment for keys it does not set.
func ParseEnvWithDefaults(target any, overrides map[string]string) error {
	opts := env.Options{Environment: mergeEnviron(overrides)}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func mergeEnviron(overrides map[string]string) map[string]string {
	merged := env.ToMap(environ())
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
