package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"solaris_crm_backend/internal/email"
	"solaris_crm_backend/internal/scheduler"
	"solaris_crm_backend/platform/config"
	"solaris_crm_backend/platform/logger"
)

// The worker process drains the email queue: welcome emails to new leads and
// sales alerts to the team, with the fixed retry schedule owned by the
// scheduler package.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting email worker", "env", cfg.Env, "queue", cfg.AsynqQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sender email.Sender
	if cfg.EmailEnabled {
		sender = email.NewGmailSender(cfg)
	} else {
		log.Warn("email delivery disabled; queued emails will be dropped")
		sender = email.NoopSender{}
	}

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize email worker", "error", err)
		panic("failed to initialize email worker: " + err.Error())
	}

	worker.Run(ctx)
}
