package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/phony-server/internal/httpserver"
	"github.com/robalobadob/phony-server/internal/registry"
	"github.com/robalobadob/phony-server/internal/sse"
	"github.com/robalobadob/phony-server/internal/supply"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := supply.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load prompt cards")
	}
	log.Info().Int("prompts", supply.Stats()).Msg("prompt cards loaded")

	dealer, err := supply.NewDealer()
	if err != nil {
		log.Fatal().Err(err).Msg("prompt supply unavailable")
	}
	reg := registry.New(dealer)
	broker := sse.New()
	srv := httpserver.New(reg, broker)

	port := getEnv("PORT", "3000")
	log.Info().Str("port", port).Msg("starting game server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
