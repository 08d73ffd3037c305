package services

import (
	"context"
	"time"

	"storefront/services/fitness/internal/application/command"
	"storefront/services/fitness/internal/application/query"
	"storefront/services/fitness/internal/domain/entities"
	"storefront/services/fitness/internal/domain/repositories"
)

type ActivityLogService struct {
	logs repositories.ActivityLogRepository
	now  func() time.Time
}

func NewActivityLogService(logs repositories.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{
		logs: logs,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Log upserts the day's log, merging the provided fields into any existing
// one. The bool reports whether a new log was created.
func (s *ActivityLogService) Log(ctx context.Context, userID string, cmd command.LogActivityCommand) (*entities.ActivityLog, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}
	now := s.now()
	date, err := cmd.Date(now)
	if err != nil {
		return nil, false, err
	}

	log, err := s.logs.FindByDate(ctx, userID, date)
	if err != nil {
		return nil, false, err
	}
	created := log == nil
	if created {
		log = &entities.ActivityLog{UserID: userID, LogDate: date, CreatedAt: now}
	}

	log.Apply(cmd.ActivityFields)
	if err := s.logs.Save(ctx, log); err != nil {
		return nil, false, err
	}
	return log, created, nil
}

func (s *ActivityLogService) List(ctx context.Context, userID string, r query.ActivityRange) ([]entities.ActivityLog, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return s.logs.ListByUser(ctx, userID, r.Start, r.End)
}

// Update changes only the provided fields of a log the user owns.
func (s *ActivityLogService) Update(ctx context.Context, userID string, id uint, cmd command.UpdateActivityCommand) (*entities.ActivityLog, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	log, err := s.logs.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrNotFound
	}

	log.Apply(cmd.ActivityFields)
	if err := s.logs.Save(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}
