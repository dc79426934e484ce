package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/zennajjames/TheVillage/internal/config"
	queueAdapter "github.com/zennajjames/TheVillage/internal/infrastructure/queue/adapter"
	"github.com/zennajjames/TheVillage/internal/pkg/notification/mailer"
	"github.com/zennajjames/TheVillage/internal/pkg/notification/task"
)

// The worker consumes notification tasks enqueued by the API and delivers
// them over SMTP. It holds no durable state of its own.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := cfg.NewLogger()

	srv, err := queueAdapter.NewAsynqServer(cfg.RedisURL, cfg.WorkerConcurrency, map[string]int{
		"notifications": 3,
		"default":       1,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create queue server")
	}

	m := mailer.NewMailer(mailer.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPassword,
		From:      cfg.EmailFrom,
		ClientURL: cfg.ClientURL,
	})
	task.RegisterNewMessageEmailTask(srv, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting notification worker")
	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Fatal("worker failed")
	}
	log.Info("worker exited")
}
