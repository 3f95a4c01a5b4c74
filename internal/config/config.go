package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	Environment    string
	MigrationsPath string

	// Оператор(ы): телеграм ID через запятую
	AdminIDs []int64

	// Параметры расписания
	HorizonDays int   // на сколько дней вперёд держим окна
	WorkHours   []int // рабочие часы (начала окон)
	DatesLimit  int   // сколько дат показываем в выборе
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	var err error

	cfg.AdminIDs, err = parseInt64List(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("parse ADMIN_IDS: %w", err)
	}

	cfg.HorizonDays, err = parseIntDefault(os.Getenv("HORIZON_DAYS"), 7)
	if err != nil {
		return nil, fmt.Errorf("parse HORIZON_DAYS: %w", err)
	}
	if cfg.HorizonDays < 1 {
		return nil, fmt.Errorf("HORIZON_DAYS must be positive, got %d", cfg.HorizonDays)
	}

	cfg.WorkHours, err = parseWorkHours(os.Getenv("WORK_HOURS"))
	if err != nil {
		return nil, fmt.Errorf("parse WORK_HOURS: %w", err)
	}

	cfg.DatesLimit, err = parseIntDefault(os.Getenv("DATES_LIMIT"), 7)
	if err != nil {
		return nil, fmt.Errorf("parse DATES_LIMIT: %w", err)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// IsAdmin проверяет является ли пользователь оператором
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func parseIntDefault(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func parseInt64List(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseWorkHours разбирает список рабочих часов, по умолчанию 10,12,14,16,18
func parseWorkHours(raw string) ([]int, error) {
	if raw == "" {
		return []int{10, 12, 14, 16, 18}, nil
	}

	parts := strings.Split(raw, ",")
	hours := make([]int, 0, len(parts))
	seen := make(map[int]bool)
	for _, part := range parts {
		hour, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if hour < 0 || hour > 23 {
			return nil, fmt.Errorf("hour out of range: %d", hour)
		}
		if seen[hour] {
			continue
		}
		seen[hour] = true
		hours = append(hours, hour)
	}

	sort.Ints(hours)
	return hours, nil
}
