package internal

import (
	"github.com/caarlos0/env/v6"
)

// Config holds the runtime switches. There is no configuration file; the
// environment is the only source.
type Config struct {
	Debug bool `env:"REACTIVITY_DEBUG"`
}

// LoadConfig reads the configuration from the environment. A malformed value
// falls back to the zero config rather than failing library init.
func LoadConfig() Config {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}
	}
	return cfg
}
