package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"festiloc/internal/app/commands"
	"festiloc/internal/app/dto"
	calendarapp "festiloc/internal/app/handlers/calendarview"
	reservationapp "festiloc/internal/app/handlers/reservations"
	stockapp "festiloc/internal/app/handlers/stock"
	"festiloc/internal/app/policies"
	"festiloc/internal/app/queries"
	domainarticle "festiloc/internal/domain/article"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
	"festiloc/internal/infra/broker/kafka"
	"festiloc/internal/infra/config"
	mongostore "festiloc/internal/infra/db/mongo"
	ginserver "festiloc/internal/infra/http/gin"
	"festiloc/internal/infra/obs"
	"festiloc/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StorageMode = "memory"
		cfg.ShutdownTimeout = 5 * time.Second
	}

	stores, ready, err := buildStores(cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	handlers := buildHandlers(stores, publisher, logger)
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type stores struct {
	reservations domainreservation.Repository
	articles     domainarticle.Source
	clients      domainclient.Source
}

func buildStores(cfg config.Config, logger *slog.Logger) (stores, func() error, error) {
	if cfg.StorageMode == "mongo" {
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, nil, err
		}
		s := stores{
			reservations: mongostore.NewReservationRepository(client.DB),
			articles:     mongostore.NewArticleRepository(client.DB),
			clients:      mongostore.NewClientRepository(client.DB),
		}
		ready := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx)
		}
		return s, ready, nil
	}

	reservations := memory.NewReservationRepository()
	articles := memory.NewArticleRepository()
	clients := memory.NewClientRepository()
	seedDemoData(articles, clients, logger)
	s := stores{reservations: reservations, articles: articles, clients: clients}
	return s, func() error { return nil }, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (policies.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return policies.NopPublisher{}, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix+"reservation-events", nil)
	if err != nil {
		logger.Warn("kafka unavailable, events disabled", "error", err)
		return policies.NopPublisher{}, func() {}
	}
	return producer, func() {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close failed", "error", err)
		}
	}
}

func buildHandlers(s stores, publisher policies.EventPublisher, logger *slog.Logger) ginserver.Handlers {
	queryBus := queries.NewInMemoryBus()
	commandBus := commands.NewInMemoryBus()

	monthHandler := &calendarapp.GetMonthHandler{Reservations: s.reservations, Clients: s.clients, Logger: logger}
	queries.Register(queryBus, calendarapp.GetMonthQuery{}.Key(), monthHandler)
	queries.Register(queryBus, calendarapp.GetStatsQuery{}.Key(), &calendarapp.GetStatsHandler{Reservations: s.reservations, Logger: logger})
	queries.Register(queryBus, calendarapp.UpcomingQuery{}.Key(), &calendarapp.UpcomingHandler{Reservations: s.reservations, Clients: s.clients, Logger: logger})
	queries.Register(queryBus, stockapp.AvailabilityQuery{}.Key(), &stockapp.AvailabilityHandler{Reservations: s.reservations, Articles: s.articles, Logger: logger})

	queries.Register(queryBus, reservationapp.ListQuery{}.Key(), &reservationapp.ListHandler{Reservations: s.reservations, Clients: s.clients})
	queries.Register(queryBus, reservationapp.ByMonthQuery{}.Key(), &reservationapp.ByMonthHandler{Reservations: s.reservations, Clients: s.clients})
	queries.Register(queryBus, reservationapp.ByClientQuery{}.Key(), &reservationapp.ByClientHandler{Reservations: s.reservations, Clients: s.clients})
	queries.Register(queryBus, reservationapp.GetQuery{}.Key(), &reservationapp.GetHandler{Reservations: s.reservations, Clients: s.clients})

	commands.Register(commandBus, reservationapp.CreateCommand{}.Key(), &reservationapp.CreateHandler{
		Reservations: s.reservations,
		Articles:     s.articles,
		Clients:      s.clients,
		Publisher:    publisher,
	})
	commands.Register(commandBus, reservationapp.UpdateCommand{}.Key(), &reservationapp.UpdateHandler{
		Reservations: s.reservations,
		Publisher:    publisher,
	})
	commands.Register(commandBus, reservationapp.DeleteCommand{}.Key(), &reservationapp.DeleteHandler{
		Reservations: s.reservations,
		Publisher:    publisher,
	})

	navigator := calendarapp.NewNavigator(func(ctx context.Context, year int, month time.Month, now time.Time) (dto.Month, error) {
		return monthHandler.Handle(ctx, calendarapp.GetMonthQuery{Year: year, Month: month, Now: now})
	}, nil)

	return ginserver.Handlers{
		Calendar:     ginserver.CalendarHandler{Queries: queryBus, Navigator: navigator},
		Reservation:  ginserver.ReservationHandler{Commands: commandBus, Queries: queryBus},
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Article:      ginserver.ArticleHandler{Articles: s.articles},
		Client:       ginserver.ClientHandler{Clients: s.clients},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
