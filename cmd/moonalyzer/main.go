package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables
	dotenvErr := godotenv.Load()

	if err := newRootCmd(dotenvErr).Execute(); err != nil {
		log.Error().Err(err).Msg("❌ moonalyzer failed")
		os.Exit(1)
	}
}
