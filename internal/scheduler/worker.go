package scheduler

import (
	"context"
	"fmt"
	"time"

	"solaris_crm_backend/internal/email"
	"solaris_crm_backend/platform/config"
	"solaris_crm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// retryDelays is the fixed backoff schedule for failed email deliveries.
var retryDelays = []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
		RetryDelayFunc: emailRetryDelay,
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskLeadWelcomeEmail, w.handleLeadWelcome)
	mux.HandleFunc(TaskSalesAlertEmail, w.handleSalesAlert)

	return w, nil
}

// emailRetryDelay ignores asynq's default exponential jitter in favor of the
// fixed 30s/60s/120s schedule.
func emailRetryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 1 {
		n = 1
	}
	if n > len(retryDelays) {
		n = len(retryDelays)
	}
	return retryDelays[n-1]
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("email worker stopped", "error", err)
	}
}

func (w *Worker) handleLeadWelcome(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadWelcomePayload(task)
	if err != nil {
		return err
	}

	if err := w.sender.SendLeadWelcome(ctx, payload.Email, payload.FirstName, payload.PropertyAddress); err != nil {
		w.log.EmailEvent("lead_welcome", payload.Email, false, err.Error())
		return err
	}

	w.log.EmailEvent("lead_welcome", payload.Email, true, "")
	return nil
}

func (w *Worker) handleSalesAlert(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSalesAlertPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	if err := w.sender.SendSalesAlert(ctx, leadID, payload.FullName, payload.Email, payload.Phone, payload.PropertyAddress); err != nil {
		w.log.EmailEvent("sales_alert", payload.Email, false, err.Error())
		return err
	}

	w.log.EmailEvent("sales_alert", payload.Email, true, "")
	return nil
}
