package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"car-damage-bot/config"
	telegram "car-damage-bot/internal/api"
	"car-damage-bot/internal/container"
	"car-damage-bot/internal/domain/cost"
	"car-damage-bot/internal/domain/port"
	"car-damage-bot/internal/infrastructure/report"
	"car-damage-bot/internal/infrastructure/roboflow"
	"car-damage-bot/internal/infrastructure/storage"
	"car-damage-bot/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.DetectorAPIKey == "" {
		log.Fatal("ROBOFLOW_API_KEY is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Справочники стоимости загружаются один раз при старте
	tables := cost.DefaultTables()
	if cfg.CostTablesPath != "" {
		tables, err = cost.LoadTables(cfg.CostTablesPath)
		if err != nil {
			log.Fatalf("Failed to load cost tables: %v", err)
		}
		log.Printf("Cost tables loaded from %s", cfg.CostTablesPath)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	// Создаём хранилище пользователей
	var userRepo port.UserRepository
	if cfg.DatabaseURL != "" {
		pgRepo, err := storage.OpenPostgresUserRepository(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open user repository: %v", err)
		}
		defer pgRepo.Close()
		userRepo = pgRepo
	} else {
		userRepo = storage.NewMemoryUserRepository()
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		UserRepo:       userRepo,
		Detector:       roboflow.New(cfg.DetectorOptions()),
		Visualizer:     vision.NewRenderer(),
		Describer:      report.NewDescriber(),
		Tables:         tables,
		OutputDir:      cfg.OutputDir,
		DefaultCarType: cfg.DefaultCarType,
	})

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Printf("Bot is running (model=%s)...", cfg.DetectorModel)
	if err := bot.Run(ctx); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
