package clocksrc

import (
	"log"
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// minValidTime is the epoch sanity threshold: an offset that still
// yields a time before this is treated as not synchronized.
var minValidTime = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// SNTP synchronizes wall-clock time against a list of NTP servers.
// BeginSync runs asynchronously; Now applies the learned offset to the
// system clock and reports false until a plausible time is available.
// It implements controller.TimeSource.
type SNTP struct {
	retry time.Duration

	mu      sync.Mutex
	offset  time.Duration
	synced  bool
	syncing bool

	// Injection points for tests
	query   func(server string) (time.Duration, error)
	sysTime func() time.Time
	sleep   func(d time.Duration)
}

// New creates an SNTP time source. retry is the pause before walking
// the server list again after every server failed.
func New(retry time.Duration) *SNTP {
	if retry <= 0 {
		retry = 5 * time.Second
	}
	return &SNTP{
		retry:   retry,
		query:   queryOffset,
		sysTime: time.Now,
		sleep:   time.Sleep,
	}
}

func queryOffset(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// BeginSync starts querying the servers in order until one answers.
// Repeated calls while a sync is already running are ignored.
func (s *SNTP) BeginSync(servers []string) {
	s.mu.Lock()
	if s.syncing || len(servers) == 0 {
		s.mu.Unlock()
		return
	}
	s.syncing = true
	s.mu.Unlock()

	go s.syncLoop(servers)
}

func (s *SNTP) syncLoop(servers []string) {
	for {
		for _, server := range servers {
			offset, err := s.query(server)
			if err != nil {
				log.Printf("time sync against %s failed: %v", server, err)
				continue
			}
			s.mu.Lock()
			s.offset = offset
			s.synced = true
			s.syncing = false
			s.mu.Unlock()
			log.Printf("time synced against %s, offset %v", server, offset)
			return
		}
		s.sleep(s.retry)
	}
}

// Now returns the synchronized wall-clock time, or false while no
// plausible time is available yet
func (s *SNTP) Now() (time.Time, bool) {
	s.mu.Lock()
	synced := s.synced
	offset := s.offset
	s.mu.Unlock()

	if !synced {
		return time.Time{}, false
	}
	t := s.sysTime().Add(offset)
	if t.Before(minValidTime) {
		return t, false
	}
	return t, true
}
