package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"khaata/cmd"
	"khaata/internal/config"
	"khaata/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine; defaults cover everything.
		log.Printf("Note: no .env file loaded: %v", err)
	}

	cfg := config.Load()

	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	lg := logger.WithComponent("main")
	lg.Debug().
		Str("data_dir", cfg.DataDir).
		Str("invoice_dir", cfg.InvoiceDir).
		Msg("Starting khaata")

	cmd.Execute(cfg)

	os.Exit(0)
}
