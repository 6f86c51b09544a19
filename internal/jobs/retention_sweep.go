// Package jobs contains River background job workers.
package jobs

import (
	"context"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"canvaspilot.io/canvaspilot/internal/config"
	"canvaspilot.io/canvaspilot/internal/models"
	"canvaspilot.io/canvaspilot/internal/pkg/logger"
)

// RetentionSweepArgs is the job payload for the periodic purge of
// soft-deleted rows past the retention window.
type RetentionSweepArgs struct{}

// Kind returns the job kind identifier.
func (RetentionSweepArgs) Kind() string { return "retention_sweep" }

// InsertOpts deduplicates sweeps: only one per period may be queued.
func (RetentionSweepArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue: river.QueueDefault,
		UniqueOpts: river.UniqueOpts{
			ByPeriod: time.Hour,
		},
	}
}

// RetentionSweepWorker hard-deletes rows that were soft-deleted longer ago
// than the retention window. Order runs parents first (users, projects,
// pages, objects, events); the ON DELETE constraints take out descendants
// of a purged parent and the later passes catch anything left behind.
type RetentionSweepWorker struct {
	river.WorkerDefaults[RetentionSweepArgs]

	db  *gorm.DB
	cfg config.RetentionConfig
}

// NewRetentionSweepWorker creates a RetentionSweepWorker.
func NewRetentionSweepWorker(db *gorm.DB, cfg config.RetentionConfig) *RetentionSweepWorker {
	return &RetentionSweepWorker{db: db, cfg: cfg}
}

// Work implements river.Worker. The job argument carries no data, so tests
// exercise Sweep through a nil job.
func (w *RetentionSweepWorker) Work(ctx context.Context, _ *river.Job[RetentionSweepArgs]) error {
	return w.Sweep(ctx, time.Now().UTC())
}

// Sweep purges every entity class in order. Each class is removed in
// batches so one huge backlog cannot hold a transaction open for minutes.
func (w *RetentionSweepWorker) Sweep(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-w.cfg.Window)

	passes := []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"projects", &models.Project{}},
		{"pages", &models.Page{}},
		{"objects", &models.PageObject{}},
		{"events", &models.Event{}},
	}

	var firstErr error
	total := int64(0)
	for _, pass := range passes {
		purged, err := w.purge(ctx, pass.model, cutoff)
		if err != nil {
			// A failed pass aborts that entity class only; the others
			// still run and committed batches stay committed.
			logger.Error("retention sweep pass failed",
				zap.String("entity", pass.name),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if purged > 0 {
			logger.Info("retention sweep purged rows",
				zap.String("entity", pass.name),
				zap.Int64("rows", purged),
			)
		}
		total += purged
	}

	logger.Info("retention sweep completed",
		zap.Time("cutoff", cutoff),
		zap.Int64("total_rows", total),
	)
	return firstErr
}

// purge hard-deletes eligible rows of one entity class in batches. The id
// subquery keeps the statement valid on engines without DELETE LIMIT.
func (w *RetentionSweepWorker) purge(ctx context.Context, model interface{}, cutoff time.Time) (int64, error) {
	db := w.db.WithContext(ctx)
	var total int64

	for {
		sub := db.Model(model).
			Select("id").
			Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
			Limit(w.cfg.BatchSize)

		res := db.Where("id IN (?)", sub).Delete(model)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
		if res.RowsAffected < int64(w.cfg.BatchSize) {
			return total, nil
		}
	}
}

// PeriodicJobs returns the periodic job definitions registered with the
// River client at startup.
func PeriodicJobs(cfg config.RetentionConfig) []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(cfg.SweepInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return RetentionSweepArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: false},
		),
	}
}
