package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config описывает настройки запуска сервиса каталога.
type Config struct {
	// DocumentPath — путь к JSON-файлу документа каталога.
	DocumentPath string `toml:"document_path"`
	// MetricsAddr — адрес HTTP-сервера метрик и health-проверок.
	MetricsAddr string `toml:"metrics_addr"`
}

// DefaultConfig возвращает базовые значения настроек.
func DefaultConfig() Config {
	return Config{
		DocumentPath: "catalog.json",
		MetricsAddr:  ":9090",
	}
}

// LoadConfig читает TOML-файл настроек (отсутствующий файл — не ошибка)
// и применяет переменные окружения поверх значений из файла.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Работаем на значениях по умолчанию.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("CATALOG_DOCUMENT_PATH"); v != "" {
		cfg.DocumentPath = v
	}
	if v := os.Getenv("CATALOG_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	return cfg, nil
}
