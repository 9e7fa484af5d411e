package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/hotel-booking-service/config"
	"github.com/Eursukkul/hotel-booking-service/internal/consumer"
	"github.com/Eursukkul/hotel-booking-service/internal/handler"
	"github.com/Eursukkul/hotel-booking-service/internal/repository"
	"github.com/Eursukkul/hotel-booking-service/internal/service"
	"github.com/Eursukkul/hotel-booking-service/pkg/database"
	"github.com/Eursukkul/hotel-booking-service/pkg/jwtutil"
	"github.com/Eursukkul/hotel-booking-service/pkg/logger"
	"github.com/Eursukkul/hotel-booking-service/pkg/metrics"
	"github.com/Eursukkul/hotel-booking-service/pkg/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	m := metrics.New(cfg.MetricsNamespace)
	tokens := jwtutil.NewManager(cfg.JWTSigningKey, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	mode := service.ParseAvailabilityMode(cfg.AvailabilityMode)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// RabbitMQ: booking events out, hotel catalog in
	var publisher service.EventPublisher
	var mqConsumer *rabbitmq.Consumer
	var consumerDone <-chan struct{}
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, rabbitmq.BookingsExchange, log)
		if err != nil {
			log.Fatal("failed to connect publisher to RabbitMQ", zap.Error(err))
		}
		defer pub.Close()
		publisher = pub

		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.HotelsExchange, consumer.HotelsQueue, consumer.HotelsBindingKey, log)
		if err != nil {
			log.Fatal("failed to connect consumer to RabbitMQ", zap.Error(err))
		}
		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal("failed to start consuming", zap.Error(err))
		}
		consumerDone = consumer.NewHotelConsumer(hotelRepo, m, log).Start(msgs)
	} else {
		log.Warn("RABBITMQ_URL not set, booking events and hotel sync are disabled")
	}

	// Services
	availabilitySvc := service.NewAvailabilityService(hotelRepo, roomRepo, bookingRepo, mode, m, log)
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, publisher, mode, m, log)
	hotelSvc := service.NewHotelService(hotelRepo, log)
	roomSvc := service.NewRoomService(roomRepo, hotelRepo, log)
	authSvc := service.NewAuthService(userRepo, tokens, m, log)

	e := newRouter(cfg, log, m, tokens,
		handler.NewHotelHandler(hotelSvc, availabilitySvc),
		handler.NewRoomHandler(roomSvc),
		handler.NewBookingHandler(bookingSvc),
		handler.NewAuthHandler(authSvc),
	)

	go func() {
		log.Info("hotel booking service starting",
			zap.String("port", cfg.ServerPort),
			zap.String("availability_mode", string(mode)))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	if mqConsumer != nil {
		mqConsumer.Close()
		select {
		case <-consumerDone:
		case <-ctx.Done():
		}
	}
}
