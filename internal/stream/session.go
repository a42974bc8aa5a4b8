package stream

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto"

	"github.com/HA-HUB-I/esp8266-oled-radio-stream/internal/controller"
)

type sessionState int

const (
	stateConnecting sessionState = iota
	stateRunning
	stateStopped
)

// session is one stream-decode activity. A background goroutine owns
// the network read and decode; Pump drains decoded chunks without
// blocking on I/O and feeds them to the player. It implements
// controller.Session.
type session struct {
	pipeline *Pipeline
	url      string
	started  time.Time
	chunks   chan []byte
	done     chan struct{}

	mu       sync.Mutex
	state    sessionState
	body     io.Closer
	player   *oto.Player
	lastData time.Time
}

func newSession(p *Pipeline, url string) *session {
	return &session{
		pipeline: p,
		url:      url,
		started:  time.Now(),
		chunks:   make(chan []byte, 8),
		done:     make(chan struct{}),
	}
}

// connect performs the ICY handshake and decoder setup, then decodes
// chunks into the channel until the stream ends or the session stops
func (s *session) connect() {
	req, err := http.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		s.fail(fmt.Errorf("bad stream URL: %w", err))
		return
	}
	req.Header.Set("Icy-MetaData", "1")
	req.Header.Set("User-Agent", "esp8266-oled-radio-stream")

	resp, err := s.pipeline.client.Do(req)
	if err != nil {
		s.fail(fmt.Errorf("failed to connect to stream: %w", err))
		return
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		s.fail(fmt.Errorf("stream returned status %s", resp.Status))
		return
	}

	if station := resp.Header.Get("icy-name"); station != "" {
		s.pipeline.postMeta(controller.MetadataStation, station)
	}

	var r io.Reader = resp.Body
	if metaint, err := strconv.Atoi(resp.Header.Get("icy-metaint")); err == nil && metaint > 0 {
		r = newMetaReader(resp.Body, metaint, func(title string) {
			s.pipeline.postMeta(controller.MetadataTitle, title)
		})
	}

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		resp.Body.Close()
		s.fail(fmt.Errorf("failed to open decoder: %w", err))
		return
	}

	player, err := s.pipeline.newPlayer(dec.SampleRate())
	if err != nil {
		resp.Body.Close()
		s.fail(err)
		return
	}

	s.mu.Lock()
	if s.state == stateStopped {
		// Stop raced the connect; clean up and bail.
		s.mu.Unlock()
		resp.Body.Close()
		player.Close()
		return
	}
	s.body = resp.Body
	s.player = player
	s.state = stateRunning
	s.lastData = time.Now()
	s.mu.Unlock()

	s.decodeLoop(dec)
}

func (s *session) decodeLoop(dec *mp3.Decoder) {
	defer close(s.chunks)
	for {
		buf := make([]byte, s.pipeline.cfg.ChunkBytes)
		n, err := dec.Read(buf)
		if n > 0 {
			select {
			case s.chunks <- buf[:n]:
			case <-s.done:
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("stream decode ended: %v", err)
			}
			return
		}
	}
}

func (s *session) fail(err error) {
	log.Printf("stream session failed: %v", err)
	s.Stop()
}

// Pump advances playback by at most one decoded chunk. It reports
// false once the session has stopped, stalled past the stall timeout
// or failed to connect within the connect timeout.
func (s *session) Pump() bool {
	s.mu.Lock()
	state := s.state
	player := s.player
	lastData := s.lastData
	s.mu.Unlock()

	switch state {
	case stateStopped:
		return false
	case stateConnecting:
		if time.Since(s.started) > s.connectTimeout() {
			s.fail(fmt.Errorf("connect timed out after %v", s.connectTimeout()))
			return false
		}
		return true
	}

	select {
	case chunk, ok := <-s.chunks:
		if !ok {
			s.Stop()
			return false
		}
		s.mu.Lock()
		s.lastData = time.Now()
		s.mu.Unlock()
		if _, err := player.Write(chunk); err != nil {
			s.fail(fmt.Errorf("playback write failed: %w", err))
			return false
		}
		return true
	default:
		if time.Since(lastData) > s.stallTimeout() {
			s.fail(fmt.Errorf("stream stalled for %v", s.stallTimeout()))
			return false
		}
		return true
	}
}

// Running reports whether the session is still alive
func (s *session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != stateStopped
}

// Playing reports whether decoded audio is flowing. False while the
// connect and decoder setup are still in progress.
func (s *session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateRunning
}

// Stop tears the session down. Closing the body unblocks the decode
// goroutine, which then exits on the read error.
func (s *session) Stop() {
	s.mu.Lock()
	if s.state == stateStopped {
		s.mu.Unlock()
		return
	}
	s.state = stateStopped
	body := s.body
	player := s.player
	s.body = nil
	s.player = nil
	s.mu.Unlock()

	close(s.done)

	if body != nil {
		body.Close()
	}
	if player != nil {
		player.Close()
	}
}

func (s *session) connectTimeout() time.Duration {
	return time.Duration(s.pipeline.cfg.ConnectTimeoutSec * float64(time.Second))
}

func (s *session) stallTimeout() time.Duration {
	return time.Duration(s.pipeline.cfg.StallTimeoutSec * float64(time.Second))
}
