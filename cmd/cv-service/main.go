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

	"github.com/talentflow/talentflow-backend/internal/cvprocessing/events"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/handler"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/processor"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/repository"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/service"
	"github.com/talentflow/talentflow-backend/internal/cvprocessing/storage"
	"github.com/talentflow/talentflow-backend/pkg/config"
	"github.com/talentflow/talentflow-backend/pkg/database"
	"github.com/talentflow/talentflow-backend/pkg/httputil"
	"github.com/talentflow/talentflow-backend/pkg/i18n"
	"github.com/talentflow/talentflow-backend/pkg/logger"
	"github.com/talentflow/talentflow-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.Load("cv-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("cv-service", cfg.Server.Environment)
	log.Info().Msg("starting CV Service")

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

	// Consumer queues dead-letter into dlx.events
	if err := rmq.DeclareDeadLetterQueue("cv-service"); err != nil {
		log.Fatal().Err(err).Msg("failed to declare dead letter queue")
	}

	// Initialize event publisher
	publisher, err := events.NewCVEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize extraction pipeline
	registry := processor.NewRegistry(processor.NewResumeProcessor())
	jobs := storage.NewJobStore(cfg.Extraction.JobTTL)
	repo := repository.New(db)

	svc := service.NewService(registry, jobs, repo, publisher, log)
	cvHandler := handler.NewHandler(svc, &cfg.Extraction, log)

	// Audit consumer writes one row per finished extraction
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	auditConsumer, err := events.NewAuditConsumer(rmq, repo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create audit consumer")
	}
	if err := auditConsumer.Start(consumerCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to start audit consumer")
	}

	// Create router
	r := chi.NewRouter()

	// Global middleware (no tenant required)
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS - supports subdomain-based multi-tenancy
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			// Allow localhost variations (development)
			if origin == "http://localhost:3000" || origin == "http://localhost:5173" {
				return true
			}
			// Allow *.localhost:3000 subdomains for development
			if len(origin) > 21 && origin[len(origin)-15:] == ".localhost:3000" {
				return true
			}
			// Allow *.talentflow.io for production
			if len(origin) > 14 && origin[len(origin)-14:] == ".talentflow.io" {
				return true
			}
			if origin == "https://talentflow.io" || origin == "http://talentflow.io" {
				return true
			}
			return false
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "Accept-Language"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// i18n middleware - extract locale from Accept-Language header
	r.Use(i18n.Middleware)

	// Health check (no tenant required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "cv-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// Protected API endpoints (tenant required)
	r.Route("/api/v1/cv", func(r chi.Router) {
		r.Use(httputil.TenantMiddleware)

		r.Route("/extractions", func(r chi.Router) {
			r.Post("/", cvHandler.Extract)
			r.Get("/{jobID}", cvHandler.GetJob)
			r.Get("/{jobID}/profile", cvHandler.GetProfile)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", cvHandler.History)
			r.Get("/{id}", cvHandler.GetExtraction)
		})

		r.Get("/stats", cvHandler.Stats)
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
