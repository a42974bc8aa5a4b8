package controller

import (
	"time"
)

// fakeClock is a manually advanced Clock
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// callLog records collaborator calls across fakes so tests can assert
// ordering
type callLog struct {
	calls []string
}

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

func (l *callLog) index(s string) int {
	for i, c := range l.calls {
		if c == s {
			return i
		}
	}
	return -1
}

type fakeLink struct {
	log *callLog

	associated  bool
	signalDBM   int
	signalOK    bool
	address     string
	joins       int
	disconnects int
	forced      int
	assocCalls  int
	signalCalls int
}

func (f *fakeLink) BeginJoin(Credentials) {
	f.joins++
	f.log.add("join")
}

func (f *fakeLink) Associated() bool {
	f.assocCalls++
	return f.associated
}

func (f *fakeLink) SignalDBM() (int, bool) {
	f.signalCalls++
	return f.signalDBM, f.signalOK
}

func (f *fakeLink) Address() string { return f.address }

func (f *fakeLink) Disconnect(force bool) {
	f.disconnects++
	if force {
		f.forced++
	}
	f.log.add("disconnect")
}

type fakeTimeSource struct {
	valid bool
	t     time.Time
	syncs int
}

func (f *fakeTimeSource) BeginSync([]string) { f.syncs++ }

func (f *fakeTimeSource) Now() (time.Time, bool) {
	if !f.valid {
		return time.Time{}, false
	}
	return f.t, true
}

type fakeSession struct {
	log *callLog

	running    bool
	playing    bool
	pumpResult bool
	pumps      int
	stops      int
}

func newFakeSession(log *callLog) *fakeSession {
	return &fakeSession{log: log, running: true, playing: true, pumpResult: true}
}

func (f *fakeSession) Pump() bool {
	f.pumps++
	f.log.add("pump")
	if !f.pumpResult {
		f.running = false
		f.playing = false
	}
	return f.pumpResult
}

func (f *fakeSession) Running() bool { return f.running }

func (f *fakeSession) Playing() bool { return f.playing }

func (f *fakeSession) Stop() {
	f.stops++
	f.running = false
	f.playing = false
	f.log.add("stop-session")
}

type fakePipeline struct {
	log *callLog

	starts   int
	err      error
	sessions []*fakeSession
}

func (f *fakePipeline) Start(string) (Session, error) {
	f.starts++
	f.log.add("start-session")
	if f.err != nil {
		return nil, f.err
	}
	s := newFakeSession(f.log)
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakePipeline) OnMetadata(func(MetadataKind, string)) {}

type fakeRenderer struct {
	snaps []Snapshot
}

func (f *fakeRenderer) MaybeRender(snap Snapshot) { f.snaps = append(f.snaps, snap) }

func (f *fakeRenderer) last() Snapshot {
	if len(f.snaps) == 0 {
		return Snapshot{}
	}
	return f.snaps[len(f.snaps)-1]
}

// harness bundles a controller with its fakes
type harness struct {
	ctrl     *Controller
	clock    *fakeClock
	link     *fakeLink
	timeSrc  *fakeTimeSource
	pipeline *fakePipeline
	renderer *fakeRenderer
	log      *callLog
}

func newHarness(cfg Config) *harness {
	log := &callLog{}
	h := &harness{
		clock:    newFakeClock(),
		link:     &fakeLink{log: log},
		timeSrc:  &fakeTimeSource{},
		pipeline: &fakePipeline{log: log},
		renderer: &fakeRenderer{},
		log:      log,
	}
	if cfg.Credentials.SSID == "" {
		cfg.Credentials.SSID = "testnet"
	}
	if cfg.StreamURL == "" {
		cfg.StreamURL = "http://radio.example/stream"
	}
	h.ctrl = New(cfg, h.clock, h.link, h.timeSrc, h.pipeline, h.renderer)
	return h
}

// tick advances the fake clock then runs one controller tick
func (h *harness) tick(step time.Duration) {
	h.clock.advance(step)
	h.ctrl.Tick()
}

// toReady drives the harness into the Ready phase
func (h *harness) toReady() {
	h.tick(time.Second) // Booting -> ConnectingNetwork
	h.link.associated = true
	h.link.address = "192.168.1.40"
	h.tick(time.Second) // -> SyncingClock
	h.timeSrc.valid = true
	h.timeSrc.t = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	h.tick(time.Second) // -> Ready
}
