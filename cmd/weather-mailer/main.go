package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dailybrief/weather-mailer/internal/domain"
	"github.com/dailybrief/weather-mailer/internal/infrastructure"
	"github.com/dailybrief/weather-mailer/internal/infrastructure/openmeteo"
	"github.com/dailybrief/weather-mailer/internal/presentation"
	"github.com/dailybrief/weather-mailer/internal/usecase"
)

type config struct {
	SenderEmail   string   `env:"SENDER_EMAIL,required"`
	EmailPassword string   `env:"EMAIL_PASSWORD,required"`
	Recipients    []string `env:"RECIPIENTS,required"`
	SMTPHost      string   `env:"SMTP_HOST"         envDefault:"smtp.gmail.com"`
	SMTPPort      int      `env:"SMTP_PORT"         envDefault:"465"`
	Subject       string   `env:"EMAIL_SUBJECT"     envDefault:"Your Daily Weather Forecast"`
	Timezone      string   `env:"FORECAST_TIMEZONE" envDefault:"America/New_York"`
}

func run() int {
	dryRun := flag.Bool("dry-run", false, "print the report to stdout instead of emailing it")
	locationsFile := flag.String("locations", "", "path to a JSON locations file (defaults to the built-in list)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	cfg, err := env.ParseAs[config]()
	if err != nil {
		slog.Error("failed to parse environment variables", slog.Any("error", err))
		return 1
	}

	locations := domain.DefaultLocations()
	if *locationsFile != "" {
		locations, err = infrastructure.LoadLocations(*locationsFile)
		if err != nil {
			slog.Error("failed to load locations", slog.Any("error", err))
			return 1
		}
	}

	client := openmeteo.NewClient(openmeteo.WithTimezone(cfg.Timezone))

	var sender usecase.ReportSender
	if *dryRun {
		sender = presentation.NewConsoleSender(os.Stdout)
	} else {
		mailSender, err := presentation.NewMailSender(presentation.MailConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SenderEmail,
			Password:   cfg.EmailPassword,
			From:       cfg.SenderEmail,
			Recipients: cfg.Recipients,
			Subject:    cfg.Subject,
		})
		if err != nil {
			slog.Error("failed to create mail sender", slog.Any("error", err))
			return 1
		}
		sender = mailSender
	}

	delivery := usecase.NewDelivery(
		client,
		sender,
		usecase.WithDeliveryErrorHandler(func(stage usecase.DeliveryStage, err error) {
			slog.Error(
				"report delivery step failed",
				slog.Any("stage", stage),
				slog.Any("error", err),
			)
		}),
	)

	if err := delivery.Run(context.Background(), locations); err != nil {
		slog.Error(
			"failed to deliver weather report",
			slog.String("category", string(presentation.ClassifySendError(err))),
			slog.Any("error", err),
		)
		return 1
	}

	slog.Info(
		"weather report delivered",
		slog.Int("locations", len(locations)),
		slog.Int("recipients", len(cfg.Recipients)),
	)
	return 0
}

func main() {
	os.Exit(run())
}
