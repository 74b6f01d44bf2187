package negotiation

import (
	"maps"
	"slices"
	"sync"
)

// Participant answers availability queries against its own free slots and
// the meetings it already committed to. Its state is never shared.
type Participant struct {
	id   string
	name string

	mu        sync.RWMutex
	available []TimeSlot
	committed map[string]TimeSlot
}

type ParticipantOption func(*Participant)

// WithName sets a display name used in logs.
func WithName(name string) ParticipantOption {
	return func(p *Participant) { p.name = name }
}

// WithCommitments preloads meetings committed in earlier runs.
func WithCommitments(committed map[string]TimeSlot) ParticipantOption {
	return func(p *Participant) {
		for id, slot := range committed {
			p.committed[id] = slot
		}
	}
}

func NewParticipant(id string, available []TimeSlot, opts ...ParticipantOption) *Participant {
	p := &Participant{
		id:        id,
		name:      id,
		available: slices.Clone(available),
		committed: make(map[string]TimeSlot),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Participant) ID() string   { return p.id }
func (p *Participant) Name() string { return p.name }

// Answer reports whether the participant can attend the queried slot. A
// committed meeting overlapping the slot always wins over free time.
func (p *Participant) Answer(q AvailabilityQuery) AvailabilityAnswer {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return AvailabilityAnswer{
		MeetingID:     q.MeetingID,
		ParticipantID: p.id,
		TimeSlot:      q.TimeSlot,
		Available:     p.canAttend(q.TimeSlot),
	}
}

func (p *Participant) canAttend(slot TimeSlot) bool {
	required := slot.Duration()
	for _, booked := range p.committed {
		if booked.Overlaps(slot, required) {
			return false
		}
	}
	for _, free := range p.available {
		if free.Overlaps(slot, required) {
			return true
		}
	}
	return false
}

// OnCommit records the meeting when the notice names this participant.
// Receiving the same notice again leaves the state unchanged.
func (p *Participant) OnCommit(n CommitNotice) bool {
	if !slices.Contains(n.Participants, p.id) {
		return false
	}
	p.mu.Lock()
	p.committed[n.MeetingID] = n.TimeSlot
	p.mu.Unlock()
	return true
}

// Commitments returns a copy of the committed meetings keyed by meeting id.
func (p *Participant) Commitments() map[string]TimeSlot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.committed)
}

// attach subscribes the participant to queries and to commit notices
// addressed to it. Answers are published back on the same bus.
func (p *Participant) attach(bus *Bus) {
	bus.Subscribe(KindQuery, p.id, func(msg Message) {
		q, ok := msg.(AvailabilityQuery)
		if !ok {
			return
		}
		bus.Publish(p.Answer(q))
	})
	bus.Subscribe(KindCommit, p.id, func(msg Message) {
		if n, ok := msg.(CommitNotice); ok {
			p.OnCommit(n)
		}
	})
}
