package netlink

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/controller"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/types"
)

func slowCommand(name string, arg ...string) *exec.Cmd {
	return exec.Command("sleep", "1")
}

// TestBeginJoinDoesNotBlock verifies a join is launched without
// awaiting the command.
func TestBeginJoinDoesNotBlock(t *testing.T) {
	l := New(types.NetworkConfig{Interface: "wlan0"})
	l.command = slowCommand

	start := time.Now()
	l.BeginJoin(controller.Credentials{SSID: "homenet", Passphrase: "secret"})
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("BeginJoin blocked for %v", elapsed)
	}
}

// TestDisconnectDoesNotBlock verifies teardown is launched without
// awaiting the command, so a slow tool cannot stall the caller.
func TestDisconnectDoesNotBlock(t *testing.T) {
	l := New(types.NetworkConfig{Interface: "wlan0"})
	l.command = slowCommand

	start := time.Now()
	l.Disconnect(false)
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Disconnect blocked for %v", elapsed)
	}
}

// TestCommandInvocations checks the launched commands carry the
// configured interface and credentials.
func TestCommandInvocations(t *testing.T) {
	l := New(types.NetworkConfig{Interface: "wlan9"})
	var calls []string
	l.command = func(name string, arg ...string) *exec.Cmd {
		calls = append(calls, name+" "+strings.Join(arg, " "))
		return exec.Command("true")
	}

	l.BeginJoin(controller.Credentials{SSID: "homenet", Passphrase: "secret"})
	l.Disconnect(false)

	if len(calls) != 2 {
		t.Fatalf("commands launched = %d, want 2", len(calls))
	}
	if !strings.Contains(calls[0], "homenet") || !strings.Contains(calls[0], "wlan9") {
		t.Errorf("join command = %q, want ssid and interface", calls[0])
	}
	if !strings.Contains(calls[1], "disconnect") || !strings.Contains(calls[1], "wlan9") {
		t.Errorf("disconnect command = %q, want disconnect on the interface", calls[1])
	}
}
