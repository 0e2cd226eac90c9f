package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type HotelsConfig struct {
	Hotels []models.Hotel `yaml:"hotels"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		hotelsPath = flag.String("hotels", "configs/hotels.yaml", "path to hotels.yaml")
		dbPath     = flag.String("db", "./data/hotelier.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*hotelsPath)
	if err != nil {
		return fmt.Errorf("read hotels: %w", err)
	}
	var cfg HotelsConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse hotels: %w", err)
	}
	if len(cfg.Hotels) == 0 {
		return fmt.Errorf("no hotels in yaml")
	}
	if err = config.ValidateHotels(cfg.Hotels); err != nil {
		return fmt.Errorf("validate hotels: %w", err)
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err = db.SeedHotels(ctx, cfg.Hotels); err != nil {
		return fmt.Errorf("seed hotels: %w", err)
	}

	rooms := 0
	for _, h := range cfg.Hotels {
		rooms += len(h.Rooms)
	}
	fmt.Printf("done: hotels=%d rooms=%d\n", len(cfg.Hotels), rooms)
	return nil
}
