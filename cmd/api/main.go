package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/auth"
	"github.com/versebridge/companion/internal/config"
	"github.com/versebridge/companion/internal/database"
	"github.com/versebridge/companion/internal/handlers"
	"github.com/versebridge/companion/internal/llm"
	"github.com/versebridge/companion/internal/retry"
	"github.com/versebridge/companion/migrations"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Starting Companion API")

	bootCtx, bootCancel := context.WithTimeout(context.Background(), time.Minute)
	db, err := database.Connect(bootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := migrations.Run(bootCtx, db.SQLDB()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	bootCancel()

	// The Gemini client is constructed eagerly but connects lazily: a missing
	// API key surfaces on the first generation call, not at boot.
	generator := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModelText, cfg.GeminiModelImage, cfg.GeminiModelImageFast)
	invoker := retry.New(cfg.LLMMaxRetries, cfg.LLMRetryBaseDelay)
	cache := database.NewPassageCacheRepository(db)

	h := handlers.NewHandler(generator, cache, invoker)
	authService := auth.NewService(db)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthHandler(db)).Methods("GET")

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(authService.Middleware)
	api.HandleFunc("/passage", h.Passage).Methods("POST")
	api.HandleFunc("/storyboard", h.Storyboard).Methods("POST")
	api.HandleFunc("/locations", h.Locations).Methods("POST")
	api.HandleFunc("/analysis", h.Analysis).Methods("POST")
	api.HandleFunc("/qa", h.QA).Methods("POST")
	api.HandleFunc("/devotional", h.Devotional).Methods("POST")
	api.HandleFunc("/studyguide", h.StudyGuide).Methods("POST")
	api.HandleFunc("/plan", h.Plan).Methods("POST")
	api.HandleFunc("/audiotranslation", h.AudioTranslation).Methods("POST")
	api.HandleFunc("/keywords", h.Keywords).Methods("POST")
	api.HandleFunc("/lexicon", h.Lexicon).Methods("POST")
	api.HandleFunc("/interlinear", h.Interlinear).Methods("POST")
	api.HandleFunc("/search", h.Search).Methods("POST")
	api.HandleFunc("/custommap", h.CustomMap).Methods("POST")
	api.HandleFunc("/image", h.Image).Methods("POST")
	api.HandleFunc("/maintenance/cache", h.SweepCache).Methods("POST")

	// Browser clients may come from any origin; the API is protected by
	// bearer keys, not by origin.
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      cors(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can run long
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down API...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("API exited")
}

func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
