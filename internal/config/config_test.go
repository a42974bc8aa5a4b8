package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig exercises file loading, defaults and validation
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid config",
			content: `{
				"network": {"interface": "wlp2s0", "ssid": "home", "passphrase": "secret"},
				"stream": {"url": "http://radio.example/stream.mp3"}
			}`,
			wantErr: false,
		},
		{
			name:    "missing ssid",
			content: `{"stream": {"url": "http://radio.example/stream.mp3"}}`,
			wantErr: true,
		},
		{
			name:    "missing stream url",
			content: `{"network": {"ssid": "home"}}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			content: `{"network": `,
			wantErr: true,
		},
		{
			name: "empty server list rejected",
			content: `{
				"network": {"ssid": "home"},
				"stream": {"url": "http://radio.example/s"},
				"clock": {"servers": []}
			}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			cfg, err := LoadConfig(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg == nil {
				t.Error("LoadConfig() returned nil config when no error expected")
			}
		})
	}
}

// TestLoadConfigKeepsDefaults verifies unspecified fields keep their
// defaults.
func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"network": {"ssid": "home", "passphrase": "secret"},
		"stream": {"url": "http://radio.example/stream.mp3"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Display.Width != 128 || cfg.Display.Height != 64 {
		t.Errorf("display = %dx%d, want 128x64", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Network.Interface != "wlan0" {
		t.Errorf("interface = %q, want wlan0", cfg.Network.Interface)
	}
	if len(cfg.Clock.Servers) != 3 {
		t.Errorf("servers = %v, want 3 defaults", cfg.Clock.Servers)
	}
	if cfg.Timing.ConnectTimeoutSec != 15 {
		t.Errorf("connect timeout = %v, want 15", cfg.Timing.ConnectTimeoutSec)
	}
}

// TestServerListCapped verifies at most three time servers are kept
func TestServerListCapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"network": {"ssid": "home"},
		"stream": {"url": "http://radio.example/s"},
		"clock": {"servers": ["a", "b", "c", "d", "e"]}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Clock.Servers) != 3 {
		t.Errorf("servers = %v, want capped at 3", cfg.Clock.Servers)
	}
}

// TestLoadConfigMissingFile checks the open error propagates
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadConfig() error = nil for missing file")
	}
}
