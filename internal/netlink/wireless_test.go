package netlink

import (
	"strings"
	"testing"
)

const wirelessSample = `Inter-| sta-|   Quality        |   Discarded packets               | Missed | WE
 face | tus | link level noise |  nwid  crypt   frag  retry   misc | beacon | 22
 wlan0: 0000   54.  -61.  -256        0      0      0      0      0        0
 wlan1: 0000   32.  -79.  -256        0      0      0      0      0        0
`

// TestParseWireless checks signal extraction from the kernel's
// wireless statistics format.
func TestParseWireless(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		iface     string
		want      int
		wantFound bool
	}{
		{"first interface", wirelessSample, "wlan0", -61, true},
		{"second interface", wirelessSample, "wlan1", -79, true},
		{"missing interface", wirelessSample, "wlan2", 0, false},
		{"headers only", "Inter-| sta-|\n face | tus |\n", "wlan0", 0, false},
		{"empty", "", "wlan0", 0, false},
		{"short line", " wlan0: 0000\n", "wlan0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := parseWireless(strings.NewReader(tt.content), tt.iface)
			if found != tt.wantFound {
				t.Fatalf("parseWireless() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("parseWireless() = %d, want %d", got, tt.want)
			}
		})
	}
}
