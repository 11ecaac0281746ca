package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hourbook/hourbook-backend/internal/timecard/events"
	"github.com/hourbook/hourbook-backend/internal/timecard/handler"
	"github.com/hourbook/hourbook-backend/internal/timecard/repository"
	"github.com/hourbook/hourbook-backend/internal/timecard/service"
	"github.com/hourbook/hourbook-backend/pkg/config"
	"github.com/hourbook/hourbook-backend/pkg/database"
	"github.com/hourbook/hourbook-backend/pkg/httputil"
	"github.com/hourbook/hourbook-backend/pkg/logger"
	"github.com/hourbook/hourbook-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("timecard-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("timecard-service", cfg.Server.Environment)
	log.Info().Msg("starting Timecard Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewTimecardEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	periodRepo := repository.NewReportingPeriodRepository(db)
	timecardRepo := repository.NewTimecardRepository(db)

	// Initialize service
	timecardService := service.NewTimecardService(db, userRepo, projectRepo, periodRepo, timecardRepo, publisher, log)

	// Initialize handler
	timecardHandler := handler.NewTimecardHandler(timecardService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for the reporting frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://hourbook.app"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "timecard-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/timecards", func(r chi.Router) {
			r.Get("/", timecardHandler.List)
			r.Post("/hours", timecardHandler.AddHours)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/hours-by-quarter", timecardHandler.HoursByQuarter)
			r.Get("/hours-by-quarter-by-user", timecardHandler.HoursByQuarterByUser)
		})

		r.Route("/reporting-periods", func(r chi.Router) {
			r.Get("/", timecardHandler.ListReportingPeriods)
			r.Get("/{start_date}/audit", timecardHandler.Audit)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", timecardHandler.ListProjects)
			r.Get("/{id}", timecardHandler.GetProject)
		})

		r.Get("/users", timecardHandler.ListUsers)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
