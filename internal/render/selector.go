package render

import (
	"log"
	"time"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/controller"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/display"
)

// spinnerFrames is the cyclic progress indicator shown on the boot,
// connect and sync screens; it advances one frame per draw.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// logoDrawer is implemented by surfaces that can draw the boot logo
type logoDrawer interface {
	DrawLogo(x, y, w, h int) error
}

// Intervals holds the per-phase minimum redraw intervals. The spinner
// screens refresh faster for the animation; the ready screen refreshes
// at the perceptible resolution of the time readout.
type Intervals struct {
	Spinner time.Duration
	Ready   time.Duration
}

func (iv Intervals) withDefaults() Intervals {
	if iv.Spinner <= 0 {
		iv.Spinner = 120 * time.Millisecond
	}
	if iv.Ready <= 0 {
		iv.Ready = 250 * time.Millisecond
	}
	return iv
}

// Selector chooses which screen to compose for the current phase and
// throttles presentation independently per phase. It implements
// controller.Renderer.
type Selector struct {
	surface   display.Surface
	intervals Intervals
	last      map[controller.Phase]time.Time
	spinner   int
}

// NewSelector creates a selector drawing onto the given surface
func NewSelector(surface display.Surface, intervals Intervals) *Selector {
	return &Selector{
		surface:   surface,
		intervals: intervals.withDefaults(),
		last:      make(map[controller.Phase]time.Time),
	}
}

// MaybeRender presents a frame for the snapshot unless the current
// phase's minimum redraw interval has not yet elapsed. Composition
// never presents directly; the throttle here is the only thing
// governing presentation rate.
func (s *Selector) MaybeRender(snap controller.Snapshot) {
	interval := s.intervals.Ready
	if snap.Phase != controller.PhaseReady {
		interval = s.intervals.Spinner
	}
	if last, ok := s.last[snap.Phase]; ok && snap.At.Sub(last) < interval {
		return
	}
	s.last[snap.Phase] = snap.At

	s.surface.Clear()
	if snap.Phase == controller.PhaseReady {
		s.readyScreen(snap)
	} else {
		s.progressScreen(snap)
	}
	if err := s.surface.Present(); err != nil {
		log.Printf("failed to present frame: %v", err)
	}
}

// progressScreen is the boot/connect/sync screen: title, animated
// spinner and a phase-specific subtitle.
func (s *Selector) progressScreen(snap controller.Snapshot) {
	w, h := s.surface.Size()

	if ld, ok := s.surface.(logoDrawer); ok {
		if err := ld.DrawLogo(w/2-12, 2, 24, 24); err != nil {
			log.Printf("failed to draw logo: %v", err)
		}
	}

	title := "web radio"
	tw := s.surface.TextWidth(display.TextMedium, title)
	s.surface.DrawText((w-tw)/2, 40, display.TextMedium, title)

	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	s.spinner++
	s.surface.DrawText(w/2-2, h-14, display.TextMedium, frame)

	sub := s.subtitle(snap)
	sw := s.surface.TextWidth(display.TextSmall, sub)
	s.surface.DrawText((w-sw)/2, h-2, display.TextSmall, sub)
}

func (s *Selector) subtitle(snap controller.Snapshot) string {
	switch snap.Phase {
	case controller.PhaseConnecting:
		return Truncate("connecting to "+snap.SSID, maxTitleChars)
	case controller.PhaseSyncingClock:
		return "syncing clock"
	default:
		return "starting"
	}
}

// readyScreen is the steady-state screen: header with connectivity
// quality, large time readout, date and the stream status line.
func (s *Selector) readyScreen(snap controller.Snapshot) {
	w, h := s.surface.Size()

	header := snap.Station
	if header == "" {
		header = snap.SSID
	}
	s.surface.DrawText(0, 9, display.TextSmall, Truncate(header, maxTitleChars-3))
	s.drawQuality(w, QualityLevel(snap.SignalDBM, snap.SignalValid, snap.Associated))
	s.surface.DrawLine(0, 12, w-1, 12)

	if snap.WallValid {
		clock := Pad2(snap.Wall.Hour()) + ":" + Pad2(snap.Wall.Minute()) + ":" + Pad2(snap.Wall.Second())
		cw := s.surface.TextWidth(display.TextLarge, clock)
		s.surface.DrawText((w-cw)/2, 38, display.TextLarge, clock)

		date := Pad2(snap.Wall.Day()) + "." + Pad2(int(snap.Wall.Month())) + "." + Pad2(snap.Wall.Year()%100)
		dw := s.surface.TextWidth(display.TextSmall, date)
		s.surface.DrawText((w-dw)/2, 50, display.TextSmall, date)
	}

	s.surface.DrawText(0, h-2, display.TextSmall, statusLine(snap))
}

// statusLine picks the bottom status text: a fresh metadata title
// within its display window, else a generic running/stopped label.
func statusLine(snap controller.Snapshot) string {
	if snap.TitleFresh {
		return Truncate(snap.Title, maxTitleChars)
	}
	if snap.Playing {
		return "playing ..."
	}
	return "stopped"
}

// drawQuality draws the signal bars in the top-right corner. Level
// QualityNone draws an empty outline instead.
func (s *Selector) drawQuality(w, level int) {
	x := w - 18
	if level == QualityNone {
		s.surface.DrawRect(x, 2, 16, 8, false)
		return
	}
	for i := 0; i < 4; i++ {
		bx := x + i*4
		bh := 2 + 2*i
		if level > i {
			s.surface.DrawRect(bx, 10-bh, 3, bh, true)
		} else {
			s.surface.DrawRect(bx, 10-bh, 3, bh, false)
		}
	}
}
