package negotiation

// Kind names a message topic on the Bus.
type Kind string

const (
	KindQuery  Kind = "availability.query"
	KindAnswer Kind = "availability.answer"
	KindCommit Kind = "meeting.committed"
)

// Message is anything that travels over the Bus.
type Message interface {
	Kind() Kind
	Meeting() string
	// Recipients restricts delivery to the named subscribers. Nil means
	// every subscriber of the kind.
	Recipients() []string
}

// AvailabilityQuery asks every participant whether it can attend TimeSlot.
type AvailabilityQuery struct {
	MeetingID string   `json:"meeting_id"`
	TimeSlot  TimeSlot `json:"time_slot"`
}

func (AvailabilityQuery) Kind() Kind           { return KindQuery }
func (q AvailabilityQuery) Meeting() string    { return q.MeetingID }
func (AvailabilityQuery) Recipients() []string { return nil }

// AvailabilityAnswer echoes the queried slot so the coordinator can tell
// answers to an earlier candidate apart from answers to the current one.
type AvailabilityAnswer struct {
	MeetingID     string   `json:"meeting_id"`
	ParticipantID string   `json:"participant_id"`
	TimeSlot      TimeSlot `json:"time_slot"`
	Available     bool     `json:"available"`
}

func (AvailabilityAnswer) Kind() Kind           { return KindAnswer }
func (a AvailabilityAnswer) Meeting() string    { return a.MeetingID }
func (AvailabilityAnswer) Recipients() []string { return nil }

// CommitNotice tells the accepting participants that a meeting is final.
type CommitNotice struct {
	MeetingID    string   `json:"meeting_id"`
	TimeSlot     TimeSlot `json:"time_slot"`
	Participants []string `json:"participants"`
}

func (CommitNotice) Kind() Kind             { return KindCommit }
func (n CommitNotice) Meeting() string      { return n.MeetingID }
func (n CommitNotice) Recipients() []string { return n.Participants }
