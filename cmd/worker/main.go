package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airport-service/config"
	"github.com/Domenick1991/airport-service/internal/email"
	"github.com/Domenick1991/airport-service/internal/kafka"
	"github.com/Domenick1991/airport-service/internal/logger"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	notifier := email.NewNotifier(userRepo, email.NewSender(logg), logg)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logg)
	defer consumer.Close()

	logg.Info("worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))
	err = consumer.Consume(ctx, kafka.OrderEventHandler(logg, notifier.Handle))
	if err != nil {
		logg.Error("consumer stopped", zap.Error(err))
		return
	}
	logg.Info("worker stopped")
}
