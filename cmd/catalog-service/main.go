package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/app"
	"github.com/vladislavdragonenkov/catalog-store/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// configPath возвращает путь к файлу настроек; переопределяется через окружение.
func configPath() string {
	if v := os.Getenv("CATALOG_CONFIG"); v != "" {
		return v
	}
	return "catalog.toml"
}

func main() {
	setupLogger()

	cfg, err := app.LoadConfig(configPath())
	if err != nil {
		log.WithError(err).Fatal("не удалось прочитать конфигурацию")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"document_path": cfg.DocumentPath,
		"metrics_addr":  cfg.MetricsAddr,
		"build":         version.String(),
	}).Info("запускаем сервис каталога")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис каталога остановлен")
}
