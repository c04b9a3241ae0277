package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

const defaultActivityRetentionDays = 180

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type activityPruner interface {
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// ActivityRetentionJobParams configure pruning of the admin activity trail.
type ActivityRetentionJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository activityPruner
	Retention  int
}

// NewActivityRetentionJob builds the job that deletes activity older than the retention window.
func NewActivityRetentionJob(params ActivityRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultActivityRetentionDays
	}
	return &activityRetentionJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type activityRetentionJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      activityPruner
	retention int
	now       func() time.Time
}

func (j *activityRetentionJob) Name() string { return "activity-retention" }

func (j *activityRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().AddDate(0, 0, -j.retention)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeleteOlderThan(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("activity retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "activity retention complete")
	return nil
}
