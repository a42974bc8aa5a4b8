package statusled

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/types"
)

// Blinker drives a status LED on a GPIO line
type Blinker struct {
	line *gpiocdev.Line
}

// New requests the configured GPIO line as an output
func New(cfg types.StatusLEDConfig) (*Blinker, error) {
	line, err := gpiocdev.RequestLine(cfg.Chip, cfg.Line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("failed to request %s line %d: %w", cfg.Chip, cfg.Line, err)
	}
	return &Blinker{line: line}, nil
}

// Close releases the GPIO line
func (b *Blinker) Close() error {
	b.line.SetValue(0)
	return b.line.Close()
}

// FatalPattern is the distinctive on/off timing signaled when the
// display fails to initialize: three short, three long, three short,
// then a pause. Entries alternate on/off starting with on.
func FatalPattern() []time.Duration {
	short := 150 * time.Millisecond
	long := 450 * time.Millisecond
	var p []time.Duration
	for i := 0; i < 3; i++ {
		p = append(p, short, short)
	}
	for i := 0; i < 3; i++ {
		p = append(p, long, short)
	}
	for i := 0; i < 3; i++ {
		p = append(p, short, short)
	}
	p[len(p)-1] = time.Second
	return p
}

// BlinkForever repeats the pattern indefinitely. It never returns.
func (b *Blinker) BlinkForever(pattern []time.Duration) {
	for {
		for i, d := range pattern {
			value := 0
			if i%2 == 0 {
				value = 1
			}
			b.line.SetValue(value)
			time.Sleep(d)
		}
	}
}
