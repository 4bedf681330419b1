package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/leofalp/rolefinder/core/pipeline"
	"github.com/leofalp/rolefinder/internal/httpapi"
	"github.com/leofalp/rolefinder/providers/fetch"
	"github.com/leofalp/rolefinder/providers/ner/nerserver"
	"github.com/leofalp/rolefinder/providers/search"
	"github.com/leofalp/rolefinder/providers/search/brave"
	"github.com/leofalp/rolefinder/providers/search/duckduckgo"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	var secondary search.Provider
	if key := os.Getenv("BRAVE_SEARCH_API_KEY"); key != "" {
		secondary = brave.New(key)
		logger.Info("brave secondary backend enabled")
	}
	searcher := search.NewFallback(duckduckgo.New(), secondary, logger)

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if base := os.Getenv("NER_SERVER_URL"); base != "" {
		opts = append(opts, pipeline.WithNER(nerserver.New(base)))
		logger.Info("ner capability enabled", "url", base)
	}
	if d := durationEnv("ROLEFINDER_TIMEOUT"); d > 0 {
		opts = append(opts, pipeline.WithTimeout(d))
	}
	if n := intEnv("ROLEFINDER_MAX_QUERIES"); n > 0 {
		opts = append(opts, pipeline.WithMaxQueries(n))
	}
	if n := intEnv("ROLEFINDER_MAX_SOURCES"); n > 0 {
		opts = append(opts, pipeline.WithMaxSourcesPerQuery(n))
	}
	if f := floatEnv("ROLEFINDER_CONFIDENCE_FLOOR"); f > 0 {
		opts = append(opts, pipeline.WithConfidenceFloor(f))
	}
	if f := floatEnv("ROLEFINDER_CORROBORATION_BONUS"); f > 0 {
		opts = append(opts, pipeline.WithCorroborationBonus(f))
	}

	p := pipeline.New(searcher, fetch.New(), opts...)

	addr := os.Getenv("ROLEFINDER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.New(p, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func durationEnv(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment", "key", key, "value", v)
		return 0
	}
	return d
}

func intEnv(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment", "key", key, "value", v)
		return 0
	}
	return n
}

func floatEnv(key string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float in environment", "key", key, "value", v)
		return 0
	}
	return f
}
