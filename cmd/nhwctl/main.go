// nhwctl triggers background jobs by hand, outside the cron schedule.
//
//	nhwctl trigger backup:auto
//	nhwctl trigger stockhistory:prune
//	nhwctl trigger stock:lowscan
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nhw-erp/nhw-erp/jobs"
)

func main() {
	if len(os.Args) != 3 || os.Args[1] != "trigger" {
		fmt.Fprintln(os.Stderr, "usage: nhwctl trigger <task-type>")
		os.Exit(2)
	}
	taskType := os.Args[2]

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	now := time.Now().UTC()
	var task *asynq.Task
	var err error
	switch taskType {
	case jobs.TaskAutoBackup:
		task, err = jobs.NewAutoBackupTask(now)
	case jobs.TaskPruneStockHistory:
		task, err = jobs.NewPruneStockHistoryTask(now)
	case jobs.TaskLowStockScan:
		task, err = jobs.NewLowStockScanTask(now)
	default:
		log.Fatalf("unsupported task %q", taskType)
	}
	if err != nil {
		log.Fatalf("build task: %v", err)
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer func() { _ = client.Close() }()

	info, err := client.EnqueueContext(context.Background(), task, asynq.MaxRetry(3))
	if err != nil {
		log.Fatalf("enqueue %s: %v", taskType, err)
	}
	fmt.Printf("enqueued %s id=%s queue=%s\n", taskType, info.ID, info.Queue)
}
