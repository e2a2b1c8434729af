package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/zvrva/stayfinder/config"
	"github.com/zvrva/stayfinder/internal/email"
	"github.com/zvrva/stayfinder/internal/kafka"
	"github.com/zvrva/stayfinder/internal/repository"
	"github.com/zvrva/stayfinder/internal/service/booking"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	listingRepo := repository.NewListingRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		listingRepo,
		userRepo,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.PendingHoldMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweep, stopSweep := sweepChannel(cfg.Worker.ExpirationSweepMinutes)
	defer stopSweep()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweep:
			cancelled, err := bookingService.CancelStalePending(ctx)
			if err != nil {
				log.Printf("cancel stale bookings error: %v", err)
				continue
			}
			if len(cancelled) > 0 {
				log.Printf("cancelled %d stale pending bookings", len(cancelled))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// sweepChannel returns the tick source for the stale-booking sweep. A
// non-positive interval disables it: receives on the returned nil channel
// block forever, so the select simply never fires.
func sweepChannel(minutes int) (<-chan time.Time, func()) {
	if minutes <= 0 {
		log.Printf("expiration sweep disabled")
		return nil, func() {}
	}
	ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
	return ticker.C, ticker.Stop
}
