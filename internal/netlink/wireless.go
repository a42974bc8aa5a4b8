package netlink

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// parseWireless extracts the signal level in dBm for the given
// interface from /proc/net/wireless content. The file has two header
// lines followed by one line per wireless interface:
//
//	wlan0: 0000   54.  -61.  -256        0      0      0      0      0        0
//
// The third value column is the signal level.
func parseWireless(r io.Reader, iface string) (int, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, iface+":") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return 0, false
		}
		level := strings.TrimSuffix(fields[3], ".")
		v, err := strconv.ParseFloat(level, 64)
		if err != nil {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}
