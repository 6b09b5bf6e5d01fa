// Package config obtains runtime configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable the relay reads at startup.
type Config struct {
	Port         string
	Environment  string
	AMQPURL      string
	AMQPExchange string
	OTLPEndpoint string
	DebugRoutes  bool
	// ReadTimeout bounds how long a connection may stay silent before it
	// is reaped. Zero disables reaping.
	ReadTimeout time.Duration
}

// Load reads COLLAB_* environment variables over code defaults.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("collab")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("environment", "development")
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "collab.events")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("debug_routes", false)
	v.SetDefault("read_timeout", time.Duration(0))

	return Config{
		Port:         v.GetString("port"),
		Environment:  v.GetString("environment"),
		AMQPURL:      v.GetString("amqp_url"),
		AMQPExchange: v.GetString("amqp_exchange"),
		OTLPEndpoint: v.GetString("otlp_endpoint"),
		DebugRoutes:  v.GetBool("debug_routes"),
		ReadTimeout:  v.GetDuration("read_timeout"),
	}
}
