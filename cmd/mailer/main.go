// Command mailer consome a fila de e-mails e entrega via SMTP.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahbm/hospital-backend/internal/infrastructure/config"
	"github.com/ahbm/hospital-backend/internal/infrastructure/email"
	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
	"github.com/ahbm/hospital-backend/internal/infrastructure/logging"
	"github.com/ahbm/hospital-backend/internal/infrastructure/messaging/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level).With("component", "mailer")

	if cfg.RabbitMQ.URL == "" || cfg.SMTP.Host == "" {
		log.Fatal("RABBITMQ_URL and SMTP_HOST are required")
	}

	i18nService, err := i18n.NewDefaultService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}

	client, err := rabbitmq.NewClient(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		log.Fatal(err)
	}
	defer client.Close()

	smtpMailer := email.NewSMTPMailer(cfg.SMTP, email.NewRenderer(i18nService, cfg.SMTP.From), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mailer started", "queue", rabbitmq.EmailQueue, "smtp_host", cfg.SMTP.Host)
	if err := client.ConsumeEmails(ctx, smtpMailer); err != nil {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("mailer exited")
}
