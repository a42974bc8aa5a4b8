package controller

import "time"

// Credentials holds the wireless network join parameters
type Credentials struct {
	SSID       string
	Passphrase string
}

// NetworkLink represents the wireless link collaborator. A join is
// triggered asynchronously with BeginJoin and polled for completion
// with Associated; none of the methods may block.
type NetworkLink interface {
	// BeginJoin starts an asynchronous association attempt
	BeginJoin(creds Credentials)
	// Associated reports whether the link is currently associated
	Associated() bool
	// SignalDBM returns the current signal strength in dBm, or false
	// when no measurement is available
	SignalDBM() (int, bool)
	// Address returns the assigned address, or "" before assignment
	Address() string
	// Disconnect tears the association down; force also aborts a join
	// that is still in progress
	Disconnect(force bool)
}

// TimeSource represents the wall-clock collaborator. BeginSync starts
// an asynchronous sync against the given servers; Now reports false
// until a plausible time is available.
type TimeSource interface {
	BeginSync(servers []string)
	Now() (time.Time, bool)
}

// MetadataKind distinguishes the kinds of stream metadata
type MetadataKind int

const (
	// MetadataStation is the station name announced by the stream
	MetadataStation MetadataKind = iota
	// MetadataTitle is the currently playing track title
	MetadataTitle
)

// Session represents one active stream-decode activity
type Session interface {
	// Pump advances the decode by one step; false means the session
	// has stopped (end of stream or decode error)
	Pump() bool
	// Running reports whether the session is still alive
	Running() bool
	// Playing reports whether decoded audio is flowing; false while
	// the session is still connecting
	Playing() bool
	// Stop tears the session down
	Stop()
}

// Pipeline represents the stream decoder collaborator
type Pipeline interface {
	// Start begins a new session for the given resource locator.
	// It must not block on network I/O.
	Start(url string) (Session, error)
	// OnMetadata registers the metadata-arrival callback. The callback
	// may be invoked from within Pump and must do bounded work only.
	OnMetadata(fn func(kind MetadataKind, text string))
}

// Renderer decides whether and what to draw for the current snapshot
type Renderer interface {
	MaybeRender(snap Snapshot)
}

// Snapshot is the view of controller state handed to the renderer
// each tick. It is computed after transitions and stream supervision
// so a transition taken this tick is reflected in this tick's frame.
type Snapshot struct {
	Phase Phase

	// At is the monotonic tick time, used for render throttling
	At time.Time

	// Wall is the synchronized wall-clock time; WallValid is false
	// until the time source has a plausible time
	Wall      time.Time
	WallValid bool

	Associated  bool
	SignalDBM   int
	SignalValid bool
	Address     string
	SSID        string

	Playing    bool
	Station    string
	Title      string
	TitleFresh bool
}
