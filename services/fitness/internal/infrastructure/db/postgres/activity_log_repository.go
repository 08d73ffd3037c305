package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/services/fitness/internal/domain/entities"
	"storefront/services/fitness/internal/domain/repositories"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Save inserts a new log or overwrites an existing one by id.
func (r *ActivityLogRepository) Save(ctx context.Context, log *entities.ActivityLog) error {
	m := activityToModel(log)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("save activity log: %w", err)
	}
	*log = m.toEntity()
	return nil
}

func (r *ActivityLogRepository) FindByID(ctx context.Context, userID string, id uint) (*entities.ActivityLog, error) {
	return r.first(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *ActivityLogRepository) FindByDate(ctx context.Context, userID, date string) (*entities.ActivityLog, error) {
	return r.first(ctx, "user_id = ? AND log_date = ?", userID, date)
}

func (r *ActivityLogRepository) first(ctx context.Context, where string, args ...any) (*entities.ActivityLog, error) {
	var m ActivityLogModel
	if err := r.db.WithContext(ctx).Where(where, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	l := m.toEntity()
	return &l, nil
}

func (r *ActivityLogRepository) ListByUser(ctx context.Context, userID, from, to string) ([]entities.ActivityLog, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != "" {
		q = q.Where("log_date >= ?", from)
	}
	if to != "" {
		q = q.Where("log_date <= ?", to)
	}

	var models []ActivityLogModel
	if err := q.Order("log_date DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]entities.ActivityLog, 0, len(models))
	for i := range models {
		logs = append(logs, models[i].toEntity())
	}
	return logs, nil
}

// Averages ignores days where the measurement was not logged.
func (r *ActivityLogRepository) Averages(ctx context.Context, userID string) (repositories.ActivityAverages, error) {
	var row struct {
		Steps      float64
		SleepHours float64
	}
	err := r.db.WithContext(ctx).
		Model(&ActivityLogModel{}).
		Select("COALESCE(AVG(steps), 0) AS steps, COALESCE(AVG(sleep_hours), 0) AS sleep_hours").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return repositories.ActivityAverages{}, err
	}
	return repositories.ActivityAverages{Steps: row.Steps, SleepHours: row.SleepHours}, nil
}

var _ repositories.ActivityLogRepository = (*ActivityLogRepository)(nil)
