package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"meeting-scheduler/core/logger"
	"meeting-scheduler/modules/scheduling/dto"
	"meeting-scheduler/modules/scheduling/mapper"
	"meeting-scheduler/modules/scheduling/negotiation"

	"github.com/gosimple/slug"
)

// runTracker keeps the stored run status in step with a running
// negotiation. record is the coordinator's outcome hook and is called from
// bus goroutines.
type runTracker struct {
	mu     sync.Mutex
	status *dto.RunStatus
	save   func(*dto.RunStatus)
}

func (t *runTracker) flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.save(t.status)
}

func (t *runTracker) setMeetings(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Meetings = n
}

func (t *runTracker) record(o negotiation.MeetingOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.Outcomes = append(t.status.Outcomes, mapper.ToOutcomeResponse(o))
	if o.Scheduled {
		t.status.Scheduled++
	} else {
		t.status.Failed++
	}
	t.save(t.status)
}

// finish stores the terminal status. A nil outcomes keeps what record
// collected; otherwise outcomes replace it in meeting order.
func (t *runTracker) finish(at time.Time, outcomes []dto.OutcomeResponse, err error) dto.RunStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	if outcomes != nil {
		t.status.Outcomes = outcomes
		t.status.Scheduled, t.status.Failed = 0, 0
		for _, o := range outcomes {
			if o.Status == dto.OutcomeScheduled {
				t.status.Scheduled++
			} else {
				t.status.Failed++
			}
		}
	}
	t.status.Status = dto.RunStatusCompleted
	if err != nil {
		t.status.Status, t.status.Error = dto.RunStatusFailed, err.Error()
	}
	t.status.FinishedAt = &at
	t.save(t.status)

	final := *t.status
	final.Outcomes = append([]dto.OutcomeResponse(nil), t.status.Outcomes...)
	return final
}

// archiveRun writes the run report and one file per meeting. Archive
// failures are logged and never fail the run.
func (s *SchedulingService) archiveRun(ctx context.Context, status dto.RunStatus) {
	report, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		logger.Error("SchedulingService:ArchiveRun:Encode", err, "run_id", status.RunID)
		return
	}
	if err := s.archive.Put(ctx, s.archive.Key(status.RunID, "report.json"), "application/json", report); err != nil {
		return
	}
	for _, o := range status.Outcomes {
		body, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			continue
		}
		key := s.archive.Key(status.RunID, meetingFileName(o))
		if err := s.archive.Put(ctx, key, "application/json", body); err != nil {
			return
		}
	}
}

func meetingFileName(o dto.OutcomeResponse) string {
	name := slug.Make(o.Name)
	if name == "" {
		return o.MeetingID + ".json"
	}
	return name + "-" + o.MeetingID + ".json"
}
