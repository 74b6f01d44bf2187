package service

import (
	"context"
	"fmt"
	"time"

	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/config"
	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/queue"
	"meeting-scheduler/core/storage"
	"meeting-scheduler/core/utils"
	meetingentity "meeting-scheduler/modules/meeting/entity"
	meetingrepo "meeting-scheduler/modules/meeting/repository"
	notificationdto "meeting-scheduler/modules/notification/dto"
	participantrepo "meeting-scheduler/modules/participant/repository"
	"meeting-scheduler/modules/scheduling/dto"
	"meeting-scheduler/modules/scheduling/mapper"
	"meeting-scheduler/modules/scheduling/negotiation"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type SchedulingServiceInterface interface {
	StartRun(ctx context.Context) (*dto.RunResponse, *errors.AppError)
	ExecuteRun(ctx context.Context, runID string) error
	GetRun(ctx context.Context, runID string) (*dto.RunStatus, *errors.AppError)
	GetLatestRun(ctx context.Context) (*dto.RunStatus, *errors.AppError)
	GetStatus(ctx context.Context) ([]dto.MeetingStatusResponse, *errors.AppError)
	Preview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, *errors.AppError)
}

// Notifier delivers the commit notice of a scheduled meeting to its
// attendees.
type Notifier interface {
	NotifyMeetingScheduled(ctx context.Context, ev *notificationdto.MeetingScheduled) error
}

// SchedulingService loads meetings and participants from the database, runs
// the negotiation and writes the results back.
type SchedulingService struct {
	meetings     meetingrepo.MeetingRepositoryInterface
	participants participantrepo.ParticipantRepositoryInterface
	cache        cache.Cache
	queue        queue.Enqueuer
	archive      storage.Archive
	notifier     Notifier
	cfg          config.SchedulingConfig
	now          func() time.Time
}

func NewSchedulingService(
	meetings meetingrepo.MeetingRepositoryInterface,
	participants participantrepo.ParticipantRepositoryInterface,
	cache cache.Cache,
	queue queue.Enqueuer,
	archive storage.Archive,
	notifier Notifier,
	cfg config.SchedulingConfig,
) *SchedulingService {
	if archive == nil {
		archive = storage.NoopArchive{}
	}
	return &SchedulingService{
		meetings:     meetings,
		participants: participants,
		cache:        cache,
		queue:        queue,
		archive:      archive,
		notifier:     notifier,
		cfg:          cfg,
		now:          time.Now,
	}
}

var _ SchedulingServiceInterface = (*SchedulingService)(nil)

// Meetings a run picks up. Failed meetings are retried since availability
// may have changed since.
var runnable = []meetingentity.MeetingStatus{meetingentity.MeetingStatusPending, meetingentity.MeetingStatusFailed}

func (s *SchedulingService) search() negotiation.CandidateSearch {
	return negotiation.CandidateSearch{
		OpeningHour: s.cfg.OpeningHour,
		ClosingHour: s.cfg.ClosingHour,
		StepHours:   s.cfg.StepHours,
	}
}

func (s *SchedulingService) runTimeout() time.Duration {
	if s.cfg.RunTimeout > 0 {
		return s.cfg.RunTimeout
	}
	return constants.DefaultRunTimeout
}

func (s *SchedulingService) statusTTL() time.Duration {
	if s.cfg.RunStatusTTL > 0 {
		return s.cfg.RunStatusTTL
	}
	return constants.DefaultRunStatusTTL
}

func runKey(runID string) string { return constants.SchedulingRunKeyPrefix + runID }

// StartRun accepts a run and hands it to the worker. Only one run may be in
// flight at a time.
func (s *SchedulingService) StartRun(ctx context.Context) (*dto.RunResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	meetings, err := s.meetings.ListByStatus(ctx, runnable...)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "load meetings failed", err)
	}

	runID := utils.GenerateRunID()
	acquired, err := s.cache.SetNX(ctx, constants.SchedulingRunLockKey, runID, s.runTimeout()+time.Minute)
	if err != nil {
		logger.Error("SchedulingService:StartRun:Lock", err)
		return nil, errors.NewAppError(errors.ErrEnqueueFailed, "scheduling is unavailable", err)
	}
	if !acquired {
		return nil, errors.NewAppError(errors.ErrSchedulingInProgress, "a scheduling run is already in progress", nil)
	}

	status := &dto.RunStatus{
		RunID:     runID,
		Status:    dto.RunStatusPending,
		Meetings:  len(meetings),
		Outcomes:  []dto.OutcomeResponse{},
		CreatedAt: s.now(),
	}
	if err := s.saveRun(ctx, status); err != nil {
		s.releaseLock(runID)
		return nil, errors.NewAppError(errors.ErrEnqueueFailed, "store run status failed", err)
	}

	_, err = s.queue.Enqueue(ctx, constants.SchedulingRunTaskType, dto.RunPayload{RunID: runID},
		asynq.TaskID(runID), asynq.Timeout(s.runTimeout()))
	if err != nil {
		status.Status, status.Error = dto.RunStatusFailed, err.Error()
		_ = s.saveRun(ctx, status)
		s.releaseLock(runID)
		return nil, errors.NewAppError(errors.ErrEnqueueFailed, "enqueue scheduling run failed", err)
	}

	logger.Info("SchedulingService:StartRun:Enqueued", "run_id", runID, "meetings", len(meetings))
	return &dto.RunResponse{
		RunID:    runID,
		Status:   dto.RunStatusPending,
		Meetings: mapper.ToPlaceholders(meetings, constants.SchedulingInProgress),
	}, nil
}

// ExecuteRun performs a run accepted by StartRun. It is called by the queue
// worker; a run id with no stored status starts a fresh record.
func (s *SchedulingService) ExecuteRun(ctx context.Context, runID string) error {
	defer s.releaseLock(runID)

	ctx, cancel := context.WithTimeout(ctx, s.runTimeout())
	defer cancel()

	status := &dto.RunStatus{RunID: runID, CreatedAt: s.now()}
	if _, err := s.cache.GetJSON(ctx, runKey(runID), status); err != nil {
		logger.Warn("SchedulingService:ExecuteRun:LoadStatus", "run_id", runID, err)
	}
	started := s.now()
	status.Status, status.StartedAt = dto.RunStatusRunning, &started
	status.Outcomes, status.Scheduled, status.Failed = []dto.OutcomeResponse{}, 0, 0

	tracker := &runTracker{status: status, save: func(st *dto.RunStatus) {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = s.saveRun(saveCtx, st)
	}}
	tracker.flush()

	records, err := s.meetings.ListByStatus(ctx, runnable...)
	if err != nil {
		tracker.finish(s.now(), nil, fmt.Errorf("load meetings: %w", err))
		return err
	}
	meetings := mapper.ToNegotiationMeetings(records)
	participants, err := s.loadParticipants(ctx)
	if err != nil {
		tracker.finish(s.now(), nil, fmt.Errorf("load participants: %w", err))
		return err
	}
	tracker.setMeetings(len(meetings))

	logger.Info("SchedulingService:ExecuteRun:Start", "run_id", runID, "meetings", len(meetings), "participants", len(participants))
	coordinator := negotiation.NewCoordinator(s.search(), negotiation.WithOutcomeHook(tracker.record))
	outcomes, runErr := coordinator.ScheduleAll(ctx, meetings, participants)

	// Persist whatever finished, even when the run timed out.
	persistCtx, cancelPersist := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultRequestTimeout)
	defer cancelPersist()
	if err := s.persist(persistCtx, runID, meetings, outcomes); err != nil && runErr == nil {
		runErr = err
	}

	final := tracker.finish(s.now(), mapper.ToOutcomeResponses(meetings, outcomes), runErr)
	s.archiveRun(persistCtx, final)

	logger.Info("SchedulingService:ExecuteRun:Done", "run_id", runID, "status", final.Status,
		"scheduled", final.Scheduled, "failed", final.Failed)
	return runErr
}

func (s *SchedulingService) persist(ctx context.Context, runID string, meetings []negotiation.Meeting, outcomes map[string]negotiation.MeetingOutcome) error {
	var firstErr error
	for _, m := range meetings {
		o, ok := outcomes[m.ID]
		if !ok {
			continue
		}
		var err error
		if slot, attendees, ok := mapper.ToScheduledSlot(runID, o); ok {
			if err = s.meetings.MarkScheduled(ctx, slot, attendees); err == nil {
				s.notify(ctx, mapper.ToMeetingScheduled(m.Name, slot, attendees))
			}
		} else if id, parseErr := uuid.Parse(o.MeetingID); parseErr == nil {
			err = s.meetings.MarkFailed(ctx, id, o.Error)
		}
		if err != nil {
			logger.Error("SchedulingService:Persist", err, "run_id", runID, "meeting_id", o.MeetingID)
			if firstErr == nil {
				firstErr = fmt.Errorf("persist meeting %s: %w", o.MeetingID, err)
			}
		}
	}
	return firstErr
}

// notify never fails the run; the schedule is already stored.
func (s *SchedulingService) notify(ctx context.Context, ev *notificationdto.MeetingScheduled) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyMeetingScheduled(ctx, ev); err != nil {
		logger.Warn("SchedulingService:Notify", "meeting_id", ev.MeetingID, "run_id", ev.RunID, err)
	}
}

func (s *SchedulingService) GetRun(ctx context.Context, runID string) (*dto.RunStatus, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var status dto.RunStatus
	found, err := s.cache.GetJSON(ctx, runKey(runID), &status)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get run status failed", err)
	}
	if !found {
		return nil, errors.NewAppError(errors.ErrNotFound, "scheduling run not found", nil)
	}
	return &status, nil
}

func (s *SchedulingService) GetLatestRun(ctx context.Context) (*dto.RunStatus, *errors.AppError) {
	runID, found, err := s.cache.Get(ctx, constants.SchedulingLatestRunKey)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get latest run failed", err)
	}
	if !found {
		return nil, errors.NewAppError(errors.ErrNotFound, "no scheduling run yet", nil)
	}
	return s.GetRun(ctx, runID)
}

// GetStatus reports every meeting with its committed slot and attendees.
func (s *SchedulingService) GetStatus(ctx context.Context) ([]dto.MeetingStatusResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	meetings, err := s.meetings.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get meetings failed", err)
	}
	ids := make([]uuid.UUID, len(meetings))
	for i, m := range meetings {
		ids[i] = m.ID
	}
	slots, err := s.meetings.GetScheduledSlots(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get scheduled slots failed", err)
	}
	attendees, err := s.meetings.GetAttendees(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get attendees failed", err)
	}

	var attendeeIDs []uuid.UUID
	for _, list := range attendees {
		attendeeIDs = append(attendeeIDs, list...)
	}
	people, err := s.participants.GetByIDs(ctx, uniqueIDs(attendeeIDs))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participants failed", err)
	}
	names := make(map[uuid.UUID]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	out := make([]dto.MeetingStatusResponse, len(meetings))
	for i := range meetings {
		var slot *meetingentity.ScheduledSlot
		if sl, ok := slots[meetings[i].ID]; ok {
			slot = &sl
		}
		out[i] = mapper.ToMeetingStatusResponse(&meetings[i], slot, attendees[meetings[i].ID], names)
	}
	return out, nil
}

// Preview negotiates the selected meetings against current availability and
// commitments without storing anything.
func (s *SchedulingService) Preview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.runTimeout())
	defer cancel()

	var (
		records []meetingentity.Meeting
		err     error
	)
	if len(req.MeetingIDs) > 0 {
		records, err = s.meetings.ListByIDs(ctx, uniqueIDs(req.MeetingIDs))
	} else {
		records, err = s.meetings.ListByStatus(ctx, runnable...)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "load meetings failed", err)
	}
	participants, err := s.loadParticipants(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "load participants failed", err)
	}

	meetings := mapper.ToNegotiationMeetings(records)
	outcomes, err := negotiation.NewCoordinator(s.search()).ScheduleAll(ctx, meetings, participants)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrSchedulingFailed, "preview failed", err)
	}
	return &dto.PreviewResponse{Outcomes: mapper.ToOutcomeResponses(meetings, outcomes)}, nil
}

// loadParticipants builds negotiation participants for every active
// participant, preloaded with the meetings they already attend.
func (s *SchedulingService) loadParticipants(ctx context.Context) ([]*negotiation.Participant, error) {
	active, err := s.participants.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(active))
	for i, p := range active {
		ids[i] = p.ID
	}
	slots, err := s.participants.GetTimeSlotsByParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.meetings.ListScheduledSlots(ctx)
	if err != nil {
		return nil, err
	}
	attendees, err := s.meetings.ListAttendees(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToNegotiationParticipants(active, slots, mapper.Commitments(scheduled, attendees)), nil
}

func (s *SchedulingService) saveRun(ctx context.Context, status *dto.RunStatus) error {
	ttl := s.statusTTL()
	if err := s.cache.SetJSON(ctx, runKey(status.RunID), status, ttl); err != nil {
		logger.Error("SchedulingService:SaveRun", err, "run_id", status.RunID)
		return err
	}
	if err := s.cache.Set(ctx, constants.SchedulingLatestRunKey, status.RunID, ttl); err != nil {
		logger.Error("SchedulingService:SaveRun:Latest", err, "run_id", status.RunID)
		return err
	}
	return nil
}

// releaseLock drops the run lock if runID still holds it.
func (s *SchedulingService) releaseLock(runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	holder, found, err := s.cache.Get(ctx, constants.SchedulingRunLockKey)
	if err != nil || !found || holder != runID {
		return
	}
	if err := s.cache.Del(ctx, constants.SchedulingRunLockKey); err != nil {
		logger.Warn("SchedulingService:ReleaseLock", "run_id", runID, err)
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
