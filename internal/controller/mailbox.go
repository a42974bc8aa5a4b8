package controller

import "sync"

// metadataEvent is one posted metadata arrival
type metadataEvent struct {
	kind MetadataKind
	text string
}

// mailbox is a per-kind single-slot mailbox for metadata events. The
// pipeline posts from within Pump; the supervisor drains once per
// tick. Posting overwrites any undrained event of the same kind, so
// the notification path never does unbounded work and never blocks.
type mailbox struct {
	mu    sync.Mutex
	slots [2]metadataEvent
	full  [2]bool
}

func (m *mailbox) post(kind MetadataKind, text string) {
	if kind != MetadataStation && kind != MetadataTitle {
		return
	}
	m.mu.Lock()
	m.slots[kind] = metadataEvent{kind: kind, text: text}
	m.full[kind] = true
	m.mu.Unlock()
}

// drain returns all pending events, latest per kind, and empties the
// mailbox.
func (m *mailbox) drain() []metadataEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []metadataEvent
	for i := range m.slots {
		if m.full[i] {
			events = append(events, m.slots[i])
			m.full[i] = false
		}
	}
	return events
}
