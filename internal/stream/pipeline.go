package stream

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/hajimehoshi/oto"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/controller"
	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/types"
)

// Pipeline creates stream sessions: ICY handshake, MP3 decode and PCM
// playback. It implements controller.Pipeline.
//
// The playback context is shared across sessions because the audio
// backend allows only one context per process; it is created lazily
// when the first session learns its sample rate.
type Pipeline struct {
	cfg    types.StreamConfig
	client *http.Client

	mu      sync.Mutex
	onMeta  func(kind controller.MetadataKind, text string)
	otoCtx  *oto.Context
	ctxRate int
}

// New creates a pipeline for the given stream configuration
func New(cfg types.StreamConfig) *Pipeline {
	if cfg.ConnectTimeoutSec <= 0 {
		cfg.ConnectTimeoutSec = 10
	}
	if cfg.StallTimeoutSec <= 0 {
		cfg.StallTimeoutSec = 10
	}
	if cfg.ChunkBytes <= 0 {
		cfg.ChunkBytes = 4096
	}
	if cfg.PlayerBufferBytes <= 0 {
		cfg.PlayerBufferBytes = 16384
	}
	return &Pipeline{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: time.Duration(cfg.ConnectTimeoutSec * float64(time.Second)),
			},
		},
	}
}

// OnMetadata registers the metadata-arrival callback
func (p *Pipeline) OnMetadata(fn func(kind controller.MetadataKind, text string)) {
	p.mu.Lock()
	p.onMeta = fn
	p.mu.Unlock()
}

func (p *Pipeline) postMeta(kind controller.MetadataKind, text string) {
	p.mu.Lock()
	fn := p.onMeta
	p.mu.Unlock()
	if fn != nil {
		fn(kind, text)
	}
}

// Start begins a new session for the given resource locator. The
// connection and decoder setup happen on a background goroutine so
// Start never blocks the caller's tick.
func (p *Pipeline) Start(url string) (controller.Session, error) {
	if url == "" {
		return nil, fmt.Errorf("empty stream URL")
	}
	s := newSession(p, url)
	go s.connect()
	return s, nil
}

// newPlayer hands out a player on the shared playback context,
// creating the context on first use
func (p *Pipeline) newPlayer(sampleRate int) (*oto.Player, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.otoCtx == nil {
		ctx, err := oto.NewContext(sampleRate, 2, 2, p.cfg.PlayerBufferBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to open audio output: %w", err)
		}
		p.otoCtx = ctx
		p.ctxRate = sampleRate
	} else if p.ctxRate != sampleRate {
		// The backend context is fixed at its original rate; playback
		// at a different rate will be off-speed.
		log.Printf("stream sample rate %d differs from audio context rate %d", sampleRate, p.ctxRate)
	}
	return p.otoCtx.NewPlayer(), nil
}
