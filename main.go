package main

import (
	"os"

	"batteryspec/worker/cmd"
	"batteryspec/worker/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
