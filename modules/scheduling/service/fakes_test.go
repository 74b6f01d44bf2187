package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/params"
	"meeting-scheduler/core/storage"
	meetingentity "meeting-scheduler/modules/meeting/entity"
	meetingrepo "meeting-scheduler/modules/meeting/repository"
	notificationdto "meeting-scheduler/modules/notification/dto"
	participantentity "meeting-scheduler/modules/participant/entity"
	participantrepo "meeting-scheduler/modules/participant/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const day = "2024-01-15"

// store is an in-memory stand-in for both repositories.
type store struct {
	mu           sync.Mutex
	meetings     []*meetingentity.Meeting
	participants []participantentity.Participant
	slots        map[uuid.UUID][]participantentity.TimeSlot
	scheduled    map[uuid.UUID]meetingentity.ScheduledSlot
	attendees    map[uuid.UUID][]uuid.UUID
	failMark     error
}

func newStore() *store {
	return &store{
		slots:     map[uuid.UUID][]participantentity.TimeSlot{},
		scheduled: map[uuid.UUID]meetingentity.ScheduledSlot{},
		attendees: map[uuid.UUID][]uuid.UUID{},
	}
}

type (
	meetingRepo     struct{ *store }
	participantRepo struct{ *store }
)

var (
	_ meetingrepo.MeetingRepositoryInterface         = meetingRepo{}
	_ participantrepo.ParticipantRepositoryInterface = participantRepo{}
	_ cache.Cache                                    = (*memCache)(nil)
	_ storage.Archive                                = (*memArchive)(nil)
)

func (s *store) addParticipant(name string, slots ...[2]float64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	p := participantentity.Participant{Name: name, Email: strings.ToLower(name) + "@example.com", IsActive: true}
	p.ID = id
	s.participants = append(s.participants, p)
	for _, sl := range slots {
		s.slots[id] = append(s.slots[id], participantentity.TimeSlot{
			ID: uuid.New(), ParticipantID: id, Date: day, StartTime: sl[0], EndTime: sl[1],
		})
	}
	return id
}

func (s *store) addMeeting(name string, duration float64, quorum int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &meetingentity.Meeting{Name: name, Date: day, Duration: duration, MinimumParticipants: quorum, Status: meetingentity.MeetingStatusPending}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	s.meetings = append(s.meetings, m)
	return m.ID
}

func (s *store) meeting(id uuid.UUID) *meetingentity.Meeting {
	for _, m := range s.meetings {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ---- meetings ----

func (s meetingRepo) Create(context.Context, *meetingentity.Meeting, []uuid.UUID) (*meetingentity.Meeting, error) {
	return nil, fmt.Errorf("not used")
}

func (s meetingRepo) GetByID(_ context.Context, id uuid.UUID) (*meetingentity.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m := s.meeting(id); m != nil {
		out := *m
		return &out, nil
	}
	return nil, nil
}

func (s meetingRepo) List(context.Context, params.QueryParams) (*meetingentity.PaginatedMeetings, error) {
	return nil, fmt.Errorf("not used")
}

func (s meetingRepo) ListAll(context.Context) ([]meetingentity.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []meetingentity.Meeting{}
	for _, m := range s.meetings {
		out = append(out, *m)
	}
	return out, nil
}

func (s meetingRepo) ListByStatus(_ context.Context, statuses ...meetingentity.MeetingStatus) ([]meetingentity.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []meetingentity.Meeting{}
	for _, m := range s.meetings {
		for _, st := range statuses {
			if m.Status == st {
				out = append(out, *m)
			}
		}
	}
	return out, nil
}

func (s meetingRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]meetingentity.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []meetingentity.Meeting{}
	for _, m := range s.meetings {
		for _, id := range ids {
			if m.ID == id {
				out = append(out, *m)
			}
		}
	}
	return out, nil
}

func (s meetingRepo) Update(context.Context, uuid.UUID, *meetingentity.Meeting, []uuid.UUID) (*meetingentity.Meeting, error) {
	return nil, fmt.Errorf("not used")
}

func (s meetingRepo) Delete(context.Context, uuid.UUID) (bool, error) { return false, fmt.Errorf("not used") }

func (s meetingRepo) GetParticipantIDs(context.Context, []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	return map[uuid.UUID][]uuid.UUID{}, nil
}

func (s meetingRepo) GetScheduledSlots(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]meetingentity.ScheduledSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[uuid.UUID]meetingentity.ScheduledSlot{}
	for _, id := range ids {
		if sl, ok := s.scheduled[id]; ok {
			out[id] = sl
		}
	}
	return out, nil
}

func (s meetingRepo) GetAttendees(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[uuid.UUID][]uuid.UUID{}
	for _, id := range ids {
		if a, ok := s.attendees[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s meetingRepo) ListScheduledSlots(context.Context) ([]meetingentity.ScheduledSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []meetingentity.ScheduledSlot{}
	for _, sl := range s.scheduled {
		out = append(out, sl)
	}
	return out, nil
}

func (s meetingRepo) ListAttendees(context.Context) ([]meetingentity.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []meetingentity.Attendee{}
	for mid, ids := range s.attendees {
		for _, pid := range ids {
			out = append(out, meetingentity.Attendee{MeetingID: mid, ParticipantID: pid})
		}
	}
	return out, nil
}

func (s meetingRepo) MarkScheduled(_ context.Context, slot *meetingentity.ScheduledSlot, attendees []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMark != nil {
		return s.failMark
	}
	s.scheduled[slot.MeetingID] = *slot
	s.attendees[slot.MeetingID] = attendees
	if m := s.meeting(slot.MeetingID); m != nil {
		m.Status, m.LastError = meetingentity.MeetingStatusScheduled, nil
	}
	return nil
}

func (s meetingRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMark != nil {
		return s.failMark
	}
	if m := s.meeting(id); m != nil {
		m.Status, m.LastError = meetingentity.MeetingStatusFailed, &reason
	}
	return nil
}

// ---- participants ----

func (s participantRepo) ListActive(context.Context) ([]participantentity.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []participantentity.Participant
	for _, p := range s.participants {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s participantRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]participantentity.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []participantentity.Participant
	for _, p := range s.participants {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s participantRepo) GetTimeSlotsByParticipants(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]participantentity.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[uuid.UUID][]participantentity.TimeSlot{}
	for _, id := range ids {
		if sl, ok := s.slots[id]; ok {
			out[id] = sl
		}
	}
	return out, nil
}

// Participant CRUD is not used by the service.

func (s participantRepo) Create(context.Context, *participantentity.Participant) (*participantentity.Participant, error) {
	return nil, fmt.Errorf("not used")
}

func (s participantRepo) GetByID(context.Context, uuid.UUID) (*participantentity.Participant, error) {
	return nil, fmt.Errorf("not used")
}

func (s participantRepo) List(context.Context, params.QueryParams) (*participantentity.PaginatedParticipants, error) {
	return nil, fmt.Errorf("not used")
}

func (s participantRepo) Update(context.Context, uuid.UUID, *participantentity.Participant) (*participantentity.Participant, error) {
	return nil, fmt.Errorf("not used")
}

func (s participantRepo) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, fmt.Errorf("not used")
}

func (s participantRepo) AddTimeSlot(context.Context, *participantentity.TimeSlot) (*participantentity.TimeSlot, error) {
	return nil, fmt.Errorf("not used")
}

func (s participantRepo) GetTimeSlots(context.Context, uuid.UUID) ([]participantentity.TimeSlot, error) {
	return nil, fmt.Errorf("not used")
}

func (s participantRepo) DeleteTimeSlot(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, fmt.Errorf("not used")
}

// ---- cache ----

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	// history of every run status written, in order
	runs []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key], c.ttl[key] = string(b), ttl
	c.runs = append(c.runs, string(b))
	return nil
}

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	v, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(v), dest)
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key], c.ttl[key] = value, ttl
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key], c.ttl[key] = value, ttl
	return true, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Close() error { return nil }

// ---- queue ----

type task struct {
	Type    string
	Payload any
}

type recordingQueue struct {
	mu    sync.Mutex
	tasks []task
	err   error
}

func (q *recordingQueue) Enqueue(_ context.Context, taskType string, payload any, _ ...asynq.Option) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task{Type: taskType, Payload: payload})
	return fmt.Sprintf("task-%d", len(q.tasks)), nil
}

// ---- archive ----

type memArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (a *memArchive) Put(_ context.Context, key, _ string, body []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.objects == nil {
		a.objects = map[string][]byte{}
	}
	a.objects[key] = body
	return nil
}

func (a *memArchive) Key(parts ...string) string {
	return path.Join(append([]string{"runs"}, parts...)...)
}

// ---- notifier ----

type recordingNotifier struct {
	mu     sync.Mutex
	events []notificationdto.MeetingScheduled
	err    error
}

func (n *recordingNotifier) NotifyMeetingScheduled(_ context.Context, ev *notificationdto.MeetingScheduled) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, *ev)
	return n.err
}
