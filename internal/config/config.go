package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/types"
)

// Config represents the application configuration
type Config struct {
	Display   types.DisplayConfig   `json:"display"`
	Network   types.NetworkConfig   `json:"network"`
	Stream    types.StreamConfig    `json:"stream"`
	Clock     types.ClockConfig     `json:"clock"`
	StatusLED types.StatusLEDConfig `json:"status_led"`
	Timing    types.TimingConfig    `json:"timing"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Display: types.DisplayConfig{
			Width:  128,
			Height: 64,
			Bus:    "",
		},
		Network: types.NetworkConfig{
			Interface: "wlan0",
		},
		Stream: types.StreamConfig{
			ConnectTimeoutSec: 10,
			StallTimeoutSec:   10,
			ChunkBytes:        4096,
			PlayerBufferBytes: 16384,
		},
		Clock: types.ClockConfig{
			Servers:      []string{"pool.ntp.org", "time.google.com", "time.cloudflare.com"},
			RetrySeconds: 5,
		},
		StatusLED: types.StatusLEDConfig{
			Chip: "gpiochip0",
			Line: 17,
		},
		Timing: types.TimingConfig{
			ConnectTimeoutSec:  15,
			SettleDelayMs:      500,
			RestartCooldownSec: 5,
			NetPollSec:         2,
			MetadataWindowSec:  30,
			SpinnerIntervalMs:  120,
			ReadyIntervalMs:    250,
		},
	}
}

func (c *Config) validate() error {
	if c.Network.SSID == "" {
		return fmt.Errorf("network.ssid must be set")
	}
	if c.Stream.URL == "" {
		return fmt.Errorf("stream.url must be set")
	}
	if len(c.Clock.Servers) == 0 {
		return fmt.Errorf("clock.servers must list at least one server")
	}
	if len(c.Clock.Servers) > 3 {
		c.Clock.Servers = c.Clock.Servers[:3]
	}
	return nil
}
