package netlink

import (
	"log"
	"net"
	"os"
	"os/exec"
	"sync"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/controller"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/types"
)

// Link drives a wireless interface through NetworkManager. Joins are
// launched asynchronously via nmcli and never awaited; association
// state and the assigned address are polled from the kernel.
// It implements controller.NetworkLink.
type Link struct {
	cfg types.NetworkConfig

	mu      sync.Mutex
	joinCmd *exec.Cmd

	// Injection point for tests
	command func(name string, arg ...string) *exec.Cmd
}

// New creates a link for the configured interface
func New(cfg types.NetworkConfig) *Link {
	return &Link{cfg: cfg, command: exec.Command}
}

// BeginJoin starts an asynchronous association attempt
func (l *Link) BeginJoin(creds controller.Credentials) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cmd := l.command("nmcli", "device", "wifi", "connect", creds.SSID,
		"password", creds.Passphrase, "ifname", l.cfg.Interface)
	if err := cmd.Start(); err != nil {
		log.Printf("failed to launch join: %v", err)
		return
	}
	l.joinCmd = cmd
	go func() {
		// Reap the process; completion is observed via Associated.
		if err := cmd.Wait(); err != nil {
			log.Printf("join command exited: %v", err)
		}
	}()
}

// Associated reports whether the interface is up with a usable
// address assigned
func (l *Link) Associated() bool {
	return l.Address() != ""
}

// Address returns the interface's IPv4 address, or "" when none is
// assigned
func (l *Link) Address() string {
	iface, err := net.InterfaceByName(l.cfg.Interface)
	if err != nil || iface.Flags&net.FlagUp == 0 {
		return ""
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLinkLocalUnicast() || ip.IsLoopback() {
			continue
		}
		return ip.String()
	}
	return ""
}

// SignalDBM reads the interface's signal level from the kernel's
// wireless statistics
func (l *Link) SignalDBM() (int, bool) {
	f, err := os.Open("/proc/net/wireless")
	if err != nil {
		return 0, false
	}
	defer f.Close()
	return parseWireless(f, l.cfg.Interface)
}

// Disconnect tears the association down. When force is set, a join
// still in progress is killed first. The teardown command is launched
// and never awaited, like BeginJoin.
func (l *Link) Disconnect(force bool) {
	l.mu.Lock()
	if force && l.joinCmd != nil && l.joinCmd.Process != nil {
		l.joinCmd.Process.Kill()
		l.joinCmd = nil
	}
	l.mu.Unlock()

	cmd := l.command("nmcli", "device", "disconnect", l.cfg.Interface)
	if err := cmd.Start(); err != nil {
		log.Printf("failed to launch disconnect: %v", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("disconnect command exited: %v", err)
		}
	}()
}
