package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"crm-analytics-service/internal/model"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var knownActivityTypes = map[string]bool{
	model.ActivityStatusChange:    true,
	model.ActivityCallCompleted:   true,
	model.ActivityAgreementSent:   true,
	model.ActivityPartnerListSent: true,
	model.ActivityNoteAdded:       true,
}

// ActivityService validates and enqueues incoming activity events.
type ActivityService interface {
	BuildActivity(req model.ActivityRequest) (model.ActivityLog, error)
	ProcessActivity(ctx context.Context, entry model.ActivityLog)
}

type activityService struct {
	worker          BatchActivityWorker
	now             func() time.Time
	newID           func() string
	futureTolerance time.Duration
}

// NewActivityService constructs an activityService.
func NewActivityService(worker BatchActivityWorker, futureTolerance time.Duration) ActivityService {
	return &activityService{
		worker:          worker,
		now:             time.Now,
		newID:           uuid.NewString,
		futureTolerance: futureTolerance,
	}
}

// BuildActivity validates and constructs an ActivityLog from an incoming
// request, assigning it a fresh identifier. The log is append-only: nothing
// downstream ever mutates it.
func (s *activityService) BuildActivity(req model.ActivityRequest) (model.ActivityLog, error) {
	if req.BDR == "" {
		return model.ActivityLog{}, &ValidationError{Message: "bdr is required"}
	}

	if req.ActivityType == "" {
		return model.ActivityLog{}, &ValidationError{Message: "activity_type is required"}
	}

	if !knownActivityTypes[req.ActivityType] {
		return model.ActivityLog{}, &ValidationError{Message: "unknown activity_type"}
	}

	if req.Timestamp == 0 {
		return model.ActivityLog{}, &ValidationError{Message: "timestamp is required"}
	}

	if req.ActivityType == model.ActivityStatusChange {
		if req.PreviousStatus == "" || req.NewStatus == "" {
			return model.ActivityLog{}, &ValidationError{Message: "previous_status and new_status are required for Status_Change"}
		}
	}

	ts := time.Unix(req.Timestamp, 0).UTC()
	if s.futureTolerance > 0 {
		if err := ValidateTimestamp(ts, s.now(), s.futureTolerance); err != nil {
			return model.ActivityLog{}, &ValidationError{Message: err.Error()}
		}
	}

	entry := model.ActivityLog{
		ID:             s.newID(),
		BDR:            req.BDR,
		ActivityType:   req.ActivityType,
		Timestamp:      ts,
		PipelineItemID: req.PipelineItemID,
		LeadID:         req.LeadID,
		PreviousStatus: req.PreviousStatus,
		NewStatus:      req.NewStatus,
		Notes:          req.Notes,
		Description:    req.Description,
	}

	return entry, nil
}

// ProcessActivity hands the entry to the batch worker.
func (s *activityService) ProcessActivity(ctx context.Context, entry model.ActivityLog) {
	s.worker.Enqueue(entry)
}

// ValidateTimestamp ensures timestamps are not too far in the future.
func ValidateTimestamp(ts time.Time, now time.Time, tolerance time.Duration) error {
	if tolerance <= 0 {
		return nil
	}
	if ts.After(now.Add(tolerance)) {
		return errors.New("timestamp cannot be in the future")
	}
	return nil
}
