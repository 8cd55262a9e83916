// README: Entry point; loads config, wires the advisor and collaborators, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"wayfarer/internal/config"
	"wayfarer/internal/conversation"
	httptransport "wayfarer/internal/http"
	"wayfarer/internal/http/handlers"
	"wayfarer/internal/infra"
	"wayfarer/internal/llm"
	"wayfarer/internal/maps"
	"wayfarer/internal/service"
	"wayfarer/internal/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider llm.Provider
	switch cfg.AI.Provider {
	case "gemini":
		gemini, err := llm.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		provider = gemini
	default:
		provider = llm.NewOpenAIProvider(cfg.AI.OpenAIKey)
	}

	var recorder *usage.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("db init: %v", err)
		}
		defer dbPool.Close()
		recorder = usage.NewService(usage.NewStore(dbPool))
	}

	var resolver handlers.GeoResolver
	if cfg.Maps.APIKey != "" {
		var cache *redis.Client
		if cfg.Redis.Addr != "" {
			cache = infra.NewRedis(cfg.Redis.Addr)
			defer cache.Close()
		}
		geoSvc, err := maps.NewGeoContextService(cfg.Maps.APIKey, cache)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		resolver = geoSvc
	}

	advisor := service.NewTripAdvisor(conversation.NewRegexAnalyzer(), provider, recorder, cfg.AI.Model)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(advisor, resolver),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
