package types

// DisplayConfig represents the configuration for the OLED display
type DisplayConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bus    string `json:"bus"`
}

// NetworkConfig represents the configuration for the wireless link
type NetworkConfig struct {
	Interface  string `json:"interface"`
	SSID       string `json:"ssid"`
	Passphrase string `json:"passphrase"`
}

// StreamConfig represents the configuration for the radio stream
type StreamConfig struct {
	URL               string  `json:"url"`
	ConnectTimeoutSec float64 `json:"connect_timeout_sec"`
	StallTimeoutSec   float64 `json:"stall_timeout_sec"`
	ChunkBytes        int     `json:"chunk_bytes"`
	PlayerBufferBytes int     `json:"player_buffer_bytes"`
}

// ClockConfig represents the configuration for time synchronization
type ClockConfig struct {
	Servers      []string `json:"servers"`
	RetrySeconds float64  `json:"retry_seconds"`
}

// StatusLEDConfig represents the configuration for the status LED
type StatusLEDConfig struct {
	Chip string `json:"chip"`
	Line int    `json:"line"`
}

// TimingConfig represents the controller and render timing tunables
type TimingConfig struct {
	ConnectTimeoutSec  float64 `json:"connect_timeout_sec"`
	SettleDelayMs      float64 `json:"settle_delay_ms"`
	RestartCooldownSec float64 `json:"restart_cooldown_sec"`
	NetPollSec         float64 `json:"net_poll_sec"`
	MetadataWindowSec  float64 `json:"metadata_window_sec"`
	SpinnerIntervalMs  float64 `json:"spinner_interval_ms"`
	ReadyIntervalMs    float64 `json:"ready_interval_ms"`
}
