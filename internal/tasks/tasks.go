package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"rentdesk/internal/config"
	"rentdesk/internal/services"
)

// TaskType defines the type of a background task.
const (
	TypePaymentsCheckOverdue = "payments:check_overdue"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// NewOverdueCheckTask builds the payload-less sweep task.
func NewOverdueCheckTask() *asynq.Task {
	return asynq.NewTask(TypePaymentsCheckOverdue, nil)
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg          *config.Config
	leaseService services.ILeaseService
}

func NewTaskProcessor(cfg *config.Config, leaseService services.ILeaseService) *TaskProcessor {
	return &TaskProcessor{
		cfg:          cfg,
		leaseService: leaseService,
	}
}

// SetupServer configures an Asynq server with the task handlers registered.
// The caller is responsible for running it.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				fmt.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v\n", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentsCheckOverdue, processor.HandlePaymentsCheckOverdueTask)
	fmt.Println("Registered background task handlers.")

	return srv, mux
}

// SetupScheduler configures an Asynq scheduler that enqueues the overdue
// sweep on the configured interval. The caller is responsible for running it.
func SetupScheduler(rdb *redis.Client, cfg *config.Config) *asynq.Scheduler {
	schedulerOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	scheduler := asynq.NewScheduler(schedulerOpt, nil)

	spec := fmt.Sprintf("@every %s", cfg.OverdueSweepInterval)
	if _, err := scheduler.Register(spec, NewOverdueCheckTask()); err != nil {
		log.Fatalf("Could not register overdue sweep schedule: %v", err)
	}
	fmt.Printf("Scheduled overdue sweep %s.\n", spec)

	return scheduler
}

// --- Task Handlers ---

// HandlePaymentsCheckOverdueTask runs the lease overdue sweep. The sweep is
// idempotent, so redeliveries are harmless.
func (p *TaskProcessor) HandlePaymentsCheckOverdueTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Starting overdue payment sweep...")

	flipped, err := p.leaseService.CheckOverduePayments(ctx)
	if err != nil {
		log.Printf("Overdue payment sweep failed: %v", err)
		return err
	}

	if flipped {
		log.Println("Overdue payment sweep finished: payments were flipped to overdue.")
	} else {
		log.Println("Overdue payment sweep finished: nothing overdue.")
	}
	return nil
}
