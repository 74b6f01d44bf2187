package negotiation

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"meeting-scheduler/core/logger"
)

// Coordinator drives one negotiation per meeting over a shared Bus. It holds
// configuration only; every ScheduleAll call builds its own bus and state, so
// a Coordinator can be reused and called concurrently.
type Coordinator struct {
	search CandidateSearch
	hook   func(MeetingOutcome)
}

type Option func(*Coordinator)

// WithOutcomeHook is called once per meeting as soon as it reaches a terminal
// state, before ScheduleAll returns. It runs on the bus goroutine that
// finished the meeting and must not block for long.
func WithOutcomeHook(hook func(MeetingOutcome)) Option {
	return func(c *Coordinator) { c.hook = hook }
}

func NewCoordinator(search CandidateSearch, opts ...Option) *Coordinator {
	c := &Coordinator{search: search}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScheduleAll negotiates every meeting concurrently and waits until each one
// is scheduled or failed. Meetings without an ID are keyed by their index.
//
// Failing to find a slot and invalid meetings are reported in the outcome.
// The error is non-nil only for duplicate meeting ids, an invalid search
// window, or ctx ending first; in the last case the outcomes reached so far
// are still returned.
func (c *Coordinator) ScheduleAll(ctx context.Context, meetings []Meeting, participants []*Participant) (map[string]MeetingOutcome, error) {
	if err := c.search.Validate(); err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}

	meetings = slices.Clone(meetings)
	seen := make(map[string]struct{}, len(meetings))
	for i := range meetings {
		if meetings[i].ID == "" {
			meetings[i].ID = strconv.Itoa(i)
		}
		if _, dup := seen[meetings[i].ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMeeting, meetings[i].ID)
		}
		seen[meetings[i].ID] = struct{}{}
	}

	logger.Info("Coordinator:ScheduleAll:Start", "meetings", len(meetings), "participants", len(participants))

	bus := NewBus()

	attached := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := attached[p.ID()]; ok {
			continue
		}
		attached[p.ID()] = struct{}{}
		p.attach(bus)
	}

	// Every negotiation and its done channel exist before the first query is
	// published, so no completion can be missed.
	negotiations := make([]*negotiation, len(meetings))
	byID := make(map[string]*negotiation, len(meetings))
	for i, m := range meetings {
		n := &negotiation{
			meeting:   m,
			search:    c.search,
			bus:       bus,
			hook:      c.hook,
			responses: make(map[string][]string),
			done:      make(chan struct{}),
		}
		negotiations[i] = n
		byID[m.ID] = n
	}

	bus.Subscribe(KindAnswer, "coordinator", func(msg Message) {
		a, ok := msg.(AvailabilityAnswer)
		if !ok {
			return
		}
		if n, ok := byID[a.MeetingID]; ok {
			n.onAnswer(a)
		}
	})

	for _, n := range negotiations {
		n.start(len(attached))
	}

	outcomes := make(map[string]MeetingOutcome, len(meetings))
	for _, n := range negotiations {
		select {
		case <-n.done:
			outcomes[n.meeting.ID] = n.result()
		case <-ctx.Done():
			for _, other := range negotiations {
				if other.finished() {
					outcomes[other.meeting.ID] = other.result()
				}
			}
			logger.Warn("Coordinator:ScheduleAll:Cancelled", "completed", len(outcomes), "meetings", len(meetings), ctx.Err())
			// In-flight handlers finish in the background.
			go bus.Close()
			return outcomes, ctx.Err()
		}
	}

	// Drain commit notices so participants hold their commitments on return.
	bus.Close()

	scheduled := 0
	for _, o := range outcomes {
		if o.Scheduled {
			scheduled++
		}
	}
	logger.Info("Coordinator:ScheduleAll:Done", "meetings", len(meetings), "scheduled", scheduled, "failed", len(meetings)-scheduled)
	return outcomes, nil
}

type state int

const (
	stateSearching state = iota
	stateScheduled
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateScheduled:
		return "SCHEDULED"
	case stateFailed:
		return "FAILED"
	default:
		return "SEARCHING"
	}
}

// negotiation is the state machine of a single meeting. Every transition
// happens under mu, so the quorum check and the advance decision see a
// consistent response set.
type negotiation struct {
	meeting Meeting
	search  CandidateSearch
	bus     *Bus
	hook    func(MeetingOutcome)

	mu        sync.Mutex
	state     state
	candidate TimeSlot
	attempts  int
	responses map[string][]string
	outcome   MeetingOutcome

	done     chan struct{}
	doneOnce sync.Once
}

func (n *negotiation) start(participants int) {
	n.mu.Lock()
	switch err := n.meeting.Validate(); {
	case err != nil:
		logger.Warn("Coordinator:StartMeeting:Invalid", "meeting_id", n.meeting.ID, err)
		n.fail(err)
	case participants < n.meeting.MinimumParticipants:
		logger.Warn("Coordinator:StartMeeting:QuorumUnreachable",
			"meeting_id", n.meeting.ID,
			"participants", participants,
			"minimum_participants", n.meeting.MinimumParticipants,
		)
		n.fail(ErrNoSuitableSlot)
	default:
		n.candidate = n.search.Opening(n.meeting)
		n.attempts = 1
		logger.Debug("Coordinator:StartMeeting", "meeting_id", n.meeting.ID, "candidate", n.candidate.String())
		n.bus.Publish(AvailabilityQuery{MeetingID: n.meeting.ID, TimeSlot: n.candidate})
	}
	terminal := n.state != stateSearching
	n.mu.Unlock()

	if terminal {
		n.finish()
	}
}

func (n *negotiation) onAnswer(a AvailabilityAnswer) {
	n.mu.Lock()
	if n.state != stateSearching || a.TimeSlot != n.candidate {
		st := n.state
		n.mu.Unlock()
		logger.Debug("Coordinator:OnAnswer:Stale",
			"meeting_id", a.MeetingID,
			"state", st.String(),
			"participant_id", a.ParticipantID,
			"slot", a.TimeSlot.String(),
		)
		return
	}

	if !a.Available {
		n.advance()
	} else {
		key := n.candidate.Key()
		if !slices.Contains(n.responses[key], a.ParticipantID) {
			n.responses[key] = append(n.responses[key], a.ParticipantID)
		}
		if len(n.responses[key]) >= n.meeting.MinimumParticipants {
			n.commit()
		}
	}
	terminal := n.state != stateSearching
	n.mu.Unlock()

	if terminal {
		n.finish()
	}
}

// advance moves to the next candidate or fails the meeting once the search
// is exhausted. Caller holds mu.
func (n *negotiation) advance() {
	next, ok := n.search.Next(n.candidate, n.meeting.Duration)
	if !ok {
		logger.Info("Coordinator:AdvanceCandidate:Exhausted", "meeting_id", n.meeting.ID, "attempts", n.attempts)
		n.fail(ErrNoSuitableSlot)
		return
	}
	n.candidate = next
	n.attempts++
	n.bus.Publish(AvailabilityQuery{MeetingID: n.meeting.ID, TimeSlot: n.candidate})
}

// commit finalises the current candidate with whoever accepted it. Caller
// holds mu.
func (n *negotiation) commit() {
	final := n.candidate
	accepted := slices.Clone(n.responses[final.Key()])

	n.bus.Publish(CommitNotice{MeetingID: n.meeting.ID, TimeSlot: final, Participants: accepted})
	n.state = stateScheduled
	n.outcome = MeetingOutcome{
		MeetingID:    n.meeting.ID,
		Name:         n.meeting.Name,
		Scheduled:    true,
		TimeSlot:     &final,
		Participants: accepted,
		Attempts:     n.attempts,
	}
	logger.Info("Coordinator:Commit",
		"meeting_id", n.meeting.ID,
		"slot", final.String(),
		"participants", accepted,
		"attempts", n.attempts,
	)
}

// fail is terminal. Caller holds mu.
func (n *negotiation) fail(err error) {
	n.state = stateFailed
	n.outcome = MeetingOutcome{
		MeetingID: n.meeting.ID,
		Name:      n.meeting.Name,
		Error:     err.Error(),
		Attempts:  n.attempts,
	}
}

// finish runs the hook and releases waiters. The outcome is immutable once
// the state is terminal, so it is read without mu.
func (n *negotiation) finish() {
	n.doneOnce.Do(func() {
		defer close(n.done)
		if n.hook == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Coordinator:OutcomeHook:Panic", "meeting_id", n.meeting.ID, "panic", r)
			}
		}()
		n.hook(n.outcome)
	})
}

func (n *negotiation) finished() bool {
	select {
	case <-n.done:
		return true
	default:
		return false
	}
}

func (n *negotiation) result() MeetingOutcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.outcome
}
