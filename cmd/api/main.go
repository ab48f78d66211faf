package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/srgjo27/seat_reservation/internal/adapter/cache"
	"github.com/srgjo27/seat_reservation/internal/adapter/handler"
	"github.com/srgjo27/seat_reservation/internal/adapter/holdstore"
	"github.com/srgjo27/seat_reservation/internal/adapter/publisher"
	"github.com/srgjo27/seat_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/seat_reservation/internal/config"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
	"github.com/srgjo27/seat_reservation/internal/core/services"
	"github.com/srgjo27/seat_reservation/internal/platform/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	var seatCache ports.SeatCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, seat listing cache disabled")
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("Redis connected")
			seatCache = cache.NewRedisSeatCache(redisClient, cfg.CacheTTL)
		}
	}

	var eventPublisher ports.EventPublisher = publisher.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := publisher.DialRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unreachable, seat sold events will only be logged")
		} else {
			defer rmq.Close()
			eventPublisher = rmq
		}
	}

	// Holds live only as long as this process.
	holds := holdstore.NewMemoryStore(cfg.HoldShards)

	seatRepo := postgres.NewSeatRepository(db)
	catalog := services.NewSeatCatalog(seatRepo, seatCache)

	bookingService := services.NewBookingService(
		seatRepo,
		holds,
		catalog,
		eventPublisher,
		cfg.HoldTTL,
		services.WithSweepInterval(cfg.SweepInterval),
	)
	eventService := services.NewEventService(catalog, holds)

	go bookingService.RunBackgroundCleanup(ctx)

	e := handler.NewRouter(
		handler.NewBookingHandler(bookingService),
		handler.NewEventHandler(eventService),
		cfg.JWTSecret,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Dur("hold_ttl", bookingService.HoldTTL()).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
