package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/clocksrc"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/config"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/controller"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/display"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/netlink"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/render"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/statusled"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/stream"
)

// tickPause keeps the polling loop polite on a host OS without
// imposing a fixed period on the controller.
const tickPause = 2 * time.Millisecond

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	headless := flag.Bool("headless", false, "Run without the OLED panel")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create the display surface. Init failure is fatal: without a
	// display the rest of the UI-facing logic is meaningless, so we
	// signal on the status LED forever instead of proceeding.
	var presenter display.Presenter = display.NopPresenter{}
	if !*headless {
		oled, err := display.OpenOLED(cfg.Display)
		if err != nil {
			log.Printf("Failed to initialize display: %v", err)
			signalFatal(cfg)
		}
		defer oled.Close()
		presenter = oled
	}

	fb, err := display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height, presenter)
	if err != nil {
		log.Printf("Failed to create framebuffer: %v", err)
		signalFatal(cfg)
	}

	// Create collaborators
	link := netlink.New(cfg.Network)
	timeSrc := clocksrc.New(time.Duration(cfg.Clock.RetrySeconds * float64(time.Second)))
	pipeline := stream.New(cfg.Stream)
	selector := render.NewSelector(fb, render.Intervals{
		Spinner: time.Duration(cfg.Timing.SpinnerIntervalMs * float64(time.Millisecond)),
		Ready:   time.Duration(cfg.Timing.ReadyIntervalMs * float64(time.Millisecond)),
	})

	ctrl := controller.New(controller.Config{
		Credentials: controller.Credentials{
			SSID:       cfg.Network.SSID,
			Passphrase: cfg.Network.Passphrase,
		},
		StreamURL:       cfg.Stream.URL,
		TimeServers:     cfg.Clock.Servers,
		ConnectTimeout:  time.Duration(cfg.Timing.ConnectTimeoutSec * float64(time.Second)),
		SettleDelay:     time.Duration(cfg.Timing.SettleDelayMs * float64(time.Millisecond)),
		RestartCooldown: time.Duration(cfg.Timing.RestartCooldownSec * float64(time.Second)),
		NetPollInterval: time.Duration(cfg.Timing.NetPollSec * float64(time.Second)),
		MetadataWindow:  time.Duration(cfg.Timing.MetadataWindowSec * float64(time.Second)),
	}, controller.RealClock{}, link, timeSrc, pipeline, selector)
	pipeline.OnMetadata(ctrl.PostMetadata)

	// Handle shutdown gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("starting radio controller (stream %s)", cfg.Stream.URL)
	for {
		select {
		case <-sigChan:
			log.Println("Shutting down...")
			fb.Clear()
			fb.Present()
			return
		default:
		}
		ctrl.Tick()
		time.Sleep(tickPause)
	}
}

// signalFatal blinks the display-failure pattern forever. Never
// returns; falls back to exiting when even the LED is unavailable.
func signalFatal(cfg *config.Config) {
	blinker, err := statusled.New(cfg.StatusLED)
	if err != nil {
		log.Fatalf("Failed to open status LED: %v", err)
	}
	blinker.BlinkForever(statusled.FatalPattern())
}
