package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"car-damage-bot/internal/infrastructure/roboflow"
)

type Config struct {
	TelegramToken string

	DetectorURL     string
	DetectorModel   string
	DetectorAPIKey  string
	DetectorMaxSide int
	DetectorTries   int
	DetectorTimeout time.Duration

	CostTablesPath string
	OutputDir      string
	DefaultCarType string
	DatabaseURL    string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		DetectorURL:     getEnv("ROBOFLOW_URL", roboflow.DefaultURL),
		DetectorModel:   getEnv("ROBOFLOW_MODEL", roboflow.DefaultModel),
		DetectorAPIKey:  os.Getenv("ROBOFLOW_API_KEY"),
		DetectorMaxSide: getInt("DETECTOR_MAX_SIDE", 1024),
		DetectorTries:   getInt("DETECTOR_ATTEMPTS", 3),
		DetectorTimeout: time.Duration(getInt("DETECTOR_TIMEOUT_SECONDS", 30)) * time.Second,

		CostTablesPath: os.Getenv("COST_TABLES_PATH"),
		OutputDir:      getEnv("OUTPUT_DIR", os.TempDir()),
		DefaultCarType: getEnv("DEFAULT_CAR_TYPE", "sedan"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	return cfg, nil
}

// DetectorOptions собирает параметры клиента детектора.
func (c *Config) DetectorOptions() roboflow.Options {
	return roboflow.Options{
		URL:      c.DetectorURL,
		Model:    c.DetectorModel,
		APIKey:   c.DetectorAPIKey,
		MaxSide:  c.DetectorMaxSide,
		Attempts: c.DetectorTries,
		Timeout:  c.DetectorTimeout,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
