package job

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-task-api/internal/metrics"
	"project-task-api/internal/repository"
)

// CleanupJob removes field values whose owning definition no longer exists.
// API deletes cascade inside a transaction, so this sweep only catches rows
// left behind by direct database writes or older deploys.
type CleanupJob struct {
	valueRepo repository.FieldValueRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	valueRepo repository.FieldValueRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		valueRepo: valueRepo,
		metrics:   m,
		logger:    logger,
	}
}

// Run executes one orphaned-value sweep
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting cleanup job for orphaned field values")

	orphaned, err := j.valueRepo.FindOrphaned(ctx)
	if err != nil {
		j.logger.Error("Failed to find orphaned field values",
			zap.Error(err),
		)
		return
	}

	if len(orphaned) == 0 {
		j.logger.Info("No orphaned field values found")
		return
	}

	j.logger.Info("Found orphaned field values",
		zap.Int("count", len(orphaned)),
	)

	ids := make([]uuid.UUID, len(orphaned))
	for i, value := range orphaned {
		ids[i] = value.ID
	}

	if err := j.valueRepo.DeleteBatch(ctx, ids); err != nil {
		j.logger.Error("Failed to delete orphaned field values",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return
	}

	if j.metrics != nil {
		j.metrics.AddOrphanedValuesDeleted(len(ids))
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("deleted", len(ids)),
	)
}
