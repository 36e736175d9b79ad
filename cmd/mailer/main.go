package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"cmsapi/internal/config"
	"cmsapi/internal/logger"
	"cmsapi/internal/mailer"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New("info")
		boot.Fatal().Err(err).Msg("configuration")
	}
	log := logger.New(cfg.LogLevel)

	if cfg.AMQPURL == "" {
		log.Fatal().Msg("AMQP_URL is required")
	}

	delivery := newDelivery(cfg, log)
	log.Info().Str("queue", cfg.MailQueue).Msg("mail consumer starting")
	err = mailer.NewConsumer(cfg.AMQPURL, cfg.MailQueue, delivery, log).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("mail consumer")
	}
	log.Info().Msg("mail consumer stopped")
}

// newDelivery picks SMTP when a relay is configured and the log otherwise.
func newDelivery(cfg *config.Config, log zerolog.Logger) mailer.Mailer {
	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP_HOST not set, mail is only logged")
		return mailer.NewLogMailer(log)
	}
	return mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
}
