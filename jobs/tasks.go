package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue all background jobs run on.
	QueueDefault = "default"

	// TaskAutoBackup snapshots the database on the nightly schedule.
	TaskAutoBackup = "backup:auto"
	// TaskPruneStockHistory trims the stock ledger to its retention cap.
	TaskPruneStockHistory = "stockhistory:prune"
	// TaskLowStockScan flags products at or under their minimum level.
	TaskLowStockScan = "stock:lowscan"
)

// ScheduledPayload carries scheduling metadata shared by the cron tasks.
type ScheduledPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

func newScheduledTask(taskType string, at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(ScheduledPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body, asynq.Queue(QueueDefault)), nil
}

// NewAutoBackupTask constructs the nightly backup task.
func NewAutoBackupTask(at time.Time) (*asynq.Task, error) {
	return newScheduledTask(TaskAutoBackup, at)
}

// NewPruneStockHistoryTask constructs the ledger prune task.
func NewPruneStockHistoryTask(at time.Time) (*asynq.Task, error) {
	return newScheduledTask(TaskPruneStockHistory, at)
}

// NewLowStockScanTask constructs the low stock scan task.
func NewLowStockScanTask(at time.Time) (*asynq.Task, error) {
	return newScheduledTask(TaskLowStockScan, at)
}
