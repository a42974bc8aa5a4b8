package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/types"
)

// OLED drives an SSD1306 panel over I2C. It implements Presenter.
type OLED struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// OpenOLED initializes the host I2C subsystem and the panel
func OpenOLED(cfg types.DisplayConfig) (*OLED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host: %w", err)
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", cfg.Bus, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = cfg.Width
	opts.H = cfg.Height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize SSD1306: %w", err)
	}

	return &OLED{bus: bus, dev: dev}, nil
}

// Draw pushes a frame to the panel
func (o *OLED) Draw(img image.Image) error {
	return o.dev.Draw(o.dev.Bounds(), img, image.Point{})
}

// Close halts the panel and releases the bus
func (o *OLED) Close() error {
	if err := o.dev.Halt(); err != nil {
		o.bus.Close()
		return err
	}
	return o.bus.Close()
}
