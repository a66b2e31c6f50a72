package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPublisher buffers events in memory. Used in tests and when no broker
// is configured.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []AccessEvent
}

// NewMemoryPublisher constructs an empty in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event AccessEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a snapshot of everything published so far.
func (p *MemoryPublisher) Events() []AccessEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]AccessEvent(nil), p.events...)
}
