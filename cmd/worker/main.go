package main

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"yamdb-backend/internal/config"
	"yamdb-backend/internal/infrastructure/email"
	"yamdb-backend/internal/infrastructure/queue"
	"yamdb-backend/internal/infrastructure/queue/handlers"
	"yamdb-backend/pkg/logger"
)

// The worker owns outbound email so the API never blocks on SMTP.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", err)
		os.Exit(1)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	emailSvc := email.NewSMTPEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeConfirmationEmail, handlers.ConfirmationEmailHandler(emailSvc))

	logger.Info("Worker starting", map[string]interface{}{
		"redis":       cfg.Redis.Host,
		"environment": cfg.App.Environment,
	})

	if err := srv.Run(mux); err != nil {
		logger.Error("Worker stopped", err)
		os.Exit(1)
	}
}
