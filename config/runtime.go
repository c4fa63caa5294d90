package config

// RuntimeConfig is the broadcast-ready, read-only copy every worker holds
// after bootstrap, mirroring the teacher's utils/config/config.go
// RuntimeConfig wrapper.
type RuntimeConfig struct {
	All Config
}

// NewRuntimeConfig wraps a validated Config for distribution to workers.
func NewRuntimeConfig(c Config) *RuntimeConfig {
	return &RuntimeConfig{All: c}
}
