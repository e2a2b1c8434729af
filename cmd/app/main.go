package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/stayfinder/config"
	"github.com/zvrva/stayfinder/internal/bootstrap"
	"github.com/zvrva/stayfinder/internal/cache"
	"github.com/zvrva/stayfinder/internal/kafka"
	"github.com/zvrva/stayfinder/internal/repository"
	"github.com/zvrva/stayfinder/internal/service/auth"
	"github.com/zvrva/stayfinder/internal/service/booking"
	"github.com/zvrva/stayfinder/internal/service/listings"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	listingRepo := repository.NewListingRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	listingService := listings.NewListingService(listingRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		listingRepo,
		userRepo,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.PendingHoldMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithAutoConfirm(cfg.Booking.AutoConfirm),
	)
	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	if err := bootstrap.Run(ctx, cfg, listingService, bookingService, authService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
