package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"invest-project/internal/adapters/zillowfetcher"

	"github.com/joho/godotenv"
)

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL string
}

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL      string
	MaxConns int // 0 — значение по умолчанию pgxpool
}

// DataConfig хранит пути к входным и выходным файлам данных
type DataConfig struct {
	PropertyCSV string // выгрузка листингов
	ZoriCSV     string // локальная копия индекса аренды
	ZoriURL     string // откуда скачивать индекс, если локальной копии нет
	ResultsCSV  string // если не пусто, результаты дублируются в CSV-файл
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	Database DBconfig
	RabbitMQ RabbitMQConfig
	Data     DataConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
		return nil, fmt.Errorf("сould not load .env file (path: %v): %v", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.Database.MaxConns = getEnvAsInt("DB_MAX_CONNS", 0)

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	cfg.Data.PropertyCSV = getEnvAsString("PROPERTY_CSV", "data/listings.csv")
	cfg.Data.ZoriCSV = getEnvAsString("ZORI_CSV", "data/zori.csv")
	cfg.Data.ZoriURL = getEnvAsString("ZORI_URL", zillowfetcher.DefaultZoriURL)
	cfg.Data.ResultsCSV = getEnvAsString("RESULTS_CSV", "")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}
