package controller

import (
	"log"
	"time"
)

// minValidTime is the epoch sanity threshold: any reported wall-clock
// time before this is treated as "not yet synchronized".
var minValidTime = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Config holds the controller tunables
type Config struct {
	Credentials Credentials
	StreamURL   string
	TimeServers []string

	// ConnectTimeout is the budget for one association attempt
	ConnectTimeout time.Duration
	// SettleDelay is the pause between a forced disconnect and the
	// next join attempt
	SettleDelay time.Duration
	// RestartCooldown is the minimum spacing between stream restarts
	RestartCooldown time.Duration
	// NetPollInterval is how often link health is checked in Ready
	NetPollInterval time.Duration
	// MetadataWindow is how long an arrived title stays on screen
	MetadataWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 15 * time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	if c.RestartCooldown <= 0 {
		c.RestartCooldown = 5 * time.Second
	}
	if c.NetPollInterval <= 0 {
		c.NetPollInterval = 2 * time.Second
	}
	if c.MetadataWindow <= 0 {
		c.MetadataWindow = 30 * time.Second
	}
	return c
}

// Metadata holds the most recent stream metadata
type Metadata struct {
	Station   string
	Title     string
	ArrivedAt time.Time
}

// Controller is the runtime state machine. It owns the overall phase
// and drives the link, time source, stream pipeline and renderer from
// a single execution context. Tick must be called repeatedly from one
// goroutine; it never blocks on network or decode I/O.
type Controller struct {
	cfg      Config
	clock    Clock
	link     NetworkLink
	timeSrc  TimeSource
	pipeline Pipeline
	renderer Renderer

	phase        Phase
	attemptStart time.Time
	rejoinAt     time.Time
	address      string

	// Cached link health, refreshed at NetPollInterval. Snapshots are
	// served from the cache so per-tick cost stays bounded.
	linkUp      bool
	signalDBM   int
	signalValid bool

	session     Session
	lastRestart time.Time
	lastNetPoll time.Time

	mail mailbox
	meta Metadata
}

// New creates a controller in the Booting phase
func New(cfg Config, clock Clock, link NetworkLink, timeSrc TimeSource, pipeline Pipeline, renderer Renderer) *Controller {
	return &Controller{
		cfg:      cfg.withDefaults(),
		clock:    clock,
		link:     link,
		timeSrc:  timeSrc,
		pipeline: pipeline,
		renderer: renderer,
		phase:    PhaseBooting,
	}
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// PostMetadata feeds a metadata arrival into the controller's mailbox.
// Safe to call from the pipeline's pump path; the event is applied on
// the next tick.
func (c *Controller) PostMetadata(kind MetadataKind, text string) {
	c.mail.post(kind, text)
}

// Tick advances the controller by one step: evaluate transitions,
// supervise the stream, then render. The ordering guarantees that a
// transition taken this tick is reflected in the same tick's frame.
func (c *Controller) Tick() {
	now := c.clock.Now()
	c.step(now)
	c.supervise(now)
	c.renderer.MaybeRender(c.snapshot(now))
}

// step evaluates the phase transition table
func (c *Controller) step(now time.Time) {
	switch c.phase {
	case PhaseBooting:
		// Display init already succeeded or we would not be ticking.
		c.phase = PhaseConnecting
		c.beginJoin(now)

	case PhaseConnecting:
		if !c.rejoinAt.IsZero() {
			// Waiting out the settle delay after a forced disconnect.
			if !now.Before(c.rejoinAt) {
				c.rejoinAt = time.Time{}
				c.beginJoin(now)
			}
			return
		}
		c.linkUp = c.link.Associated()
		if c.linkUp {
			c.address = c.link.Address()
			log.Printf("network associated, address %s", c.address)
			c.timeSrc.BeginSync(c.cfg.TimeServers)
			c.phase = PhaseSyncingClock
			return
		}
		if now.Sub(c.attemptStart) > c.cfg.ConnectTimeout {
			log.Printf("join attempt timed out after %v, restarting", c.cfg.ConnectTimeout)
			c.link.Disconnect(true)
			c.rejoinAt = now.Add(c.cfg.SettleDelay)
		}

	case PhaseSyncingClock:
		if t, ok := c.timeSrc.Now(); ok && t.After(minValidTime) {
			log.Printf("clock synchronized: %s", t.Format(time.RFC3339))
			c.phase = PhaseReady
			c.refreshLink(now)
			c.startSession(now)
		}

	case PhaseReady:
		if now.Sub(c.lastNetPoll) >= c.cfg.NetPollInterval {
			c.refreshLink(now)
			if !c.linkUp {
				log.Printf("network association lost, reconnecting")
				c.stopSession()
				c.address = ""
				c.phase = PhaseConnecting
				c.beginJoin(now)
			}
		}
	}
}

// refreshLink samples association and signal strength into the cache
// and resets the poll timer
func (c *Controller) refreshLink(now time.Time) {
	c.lastNetPoll = now
	c.linkUp = c.link.Associated()
	if c.linkUp {
		c.signalDBM, c.signalValid = c.link.SignalDBM()
	} else {
		c.signalDBM, c.signalValid = 0, false
	}
}

// supervise runs the steady-state stream supervision. Only active in
// the Ready phase.
func (c *Controller) supervise(now time.Time) {
	if c.phase != PhaseReady {
		return
	}

	for _, ev := range c.mail.drain() {
		switch ev.kind {
		case MetadataStation:
			c.meta.Station = ev.text
		case MetadataTitle:
			c.meta.Title = ev.text
			c.meta.ArrivedAt = now
		}
	}

	if c.session != nil && !c.session.Running() {
		c.stopSession()
		c.lastRestart = now
	}
	if c.session != nil {
		if !c.session.Pump() {
			log.Printf("stream pump reported stop")
			c.stopSession()
			// Cooldown runs from teardown, not from the last start.
			c.lastRestart = now
		}
	} else if now.Sub(c.lastRestart) >= c.cfg.RestartCooldown {
		c.startSession(now)
	}
}

func (c *Controller) beginJoin(now time.Time) {
	c.link.BeginJoin(c.cfg.Credentials)
	c.attemptStart = now
}

func (c *Controller) startSession(now time.Time) {
	c.lastRestart = now
	sess, err := c.pipeline.Start(c.cfg.StreamURL)
	if err != nil {
		log.Printf("failed to start stream session: %v", err)
		return
	}
	c.session = sess
}

func (c *Controller) stopSession() {
	if c.session != nil {
		c.session.Stop()
		c.session = nil
	}
}

// snapshot captures the state the renderer needs for one frame
func (c *Controller) snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		Phase:   c.phase,
		At:      now,
		Address: c.address,
		SSID:    c.cfg.Credentials.SSID,
		Station: c.meta.Station,
	}
	snap.Associated = c.linkUp
	snap.SignalDBM = c.signalDBM
	snap.SignalValid = c.signalValid
	if t, ok := c.timeSrc.Now(); ok && t.After(minValidTime) {
		snap.Wall = t
		snap.WallValid = true
	}
	snap.Playing = c.session != nil && c.session.Playing()
	if c.meta.Title != "" && now.Sub(c.meta.ArrivedAt) <= c.cfg.MetadataWindow {
		snap.Title = c.meta.Title
		snap.TitleFresh = true
	}
	return snap
}
