package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/afghan7861/Zentro-backend/internal/adapter/repo"
	"github.com/afghan7861/Zentro-backend/internal/entitlement"
	"github.com/afghan7861/Zentro-backend/internal/generation"
	"github.com/afghan7861/Zentro-backend/internal/http/handlers"
	"github.com/afghan7861/Zentro-backend/internal/http/httpapi"
	"github.com/afghan7861/Zentro-backend/internal/infra"
	"github.com/afghan7861/Zentro-backend/internal/infra/geoip"
	"github.com/afghan7861/Zentro-backend/internal/middleware"
	"github.com/afghan7861/Zentro-backend/internal/providers/text"
	"github.com/afghan7861/Zentro-backend/internal/providers/voice"
	"github.com/afghan7861/Zentro-backend/internal/quota"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	subscriptions := repo.NewSubscriptionRepository(dbpool)
	plans := repo.NewPlanRepository(dbpool)

	textGen, err := text.NewOpenAIClient(text.OpenAIOptions{
		APIKey:       cfg.OpenAIAPIKey,
		Model:        cfg.OpenAIModel,
		BaseURL:      cfg.OpenAIBaseURL,
		Organization: cfg.OpenAIOrg,
		OnWarning: func(reason, detail string) {
			logger.Warn().Str("reason", reason).Str("detail", detail).Msg("openai model normalized")
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build openai client")
	}

	synthesizer, err := voice.NewElevenLabsClient(voice.ElevenLabsOptions{
		APIKey:         cfg.ElevenLabsAPIKey,
		BaseURL:        cfg.ElevenLabsBaseURL,
		DefaultVoiceID: cfg.ElevenLabsVoiceID,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build elevenlabs client")
	}

	resolver := entitlement.NewResolver(subscriptions)
	orchestrator := generation.NewOrchestrator(generation.Options{
		Resolver:    resolver,
		Counter:     quota.NewCounter(plans),
		Plans:       plans,
		TextGen:     textGen,
		Synthesizer: synthesizer,
		Timeout:     cfg.ProviderTimeout,
		Logger:      logger,
	})

	app := handlers.NewApp(orchestrator, plans, synthesizer, resolver, logger)

	var countryLookup middleware.CountryLookup
	countries, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver unavailable")
	} else if countries != nil {
		countryLookup = countries.CountryCode
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   countryLookup,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
