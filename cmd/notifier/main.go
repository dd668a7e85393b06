package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/config"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/notifier"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.LoadNotifier(log)

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("no kafka brokers configured (KAFKA_BROKERS)")
	}

	var templates fs.FS = notifier.DefaultTemplates()
	if cfg.TMPLDir != "" {
		templates = os.DirFS(cfg.TMPLDir)
	}

	emailSender := notifier.NewEmailSender(notifier.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		SSL:      cfg.SMTPSSL,
		LogoPath: cfg.LogoPath,
	}, notifier.NewRenderer(templates))

	cons := notifier.NewKafkaOrderConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopic, cfg.AdminEmail, emailSender, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := cons.Run(ctx); err != nil {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutdown signal received")
	cancel()
	_ = cons.Close()
	time.Sleep(200 * time.Millisecond)
}
