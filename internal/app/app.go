package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/catalog-store/internal/health"
	"github.com/vladislavdragonenkov/catalog-store/internal/version"
)

// Run собирает зависимости и держит процесс до отмены контекста.
// Протокольный и диалоговый слои — внешние потребители deps.Service;
// сам процесс отдаёт только метрики и health-проверки.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	deps := NewDependencies(cfg, logger)

	healthHandler := healthcheck.NewHandler(version.Version())
	healthHandler.Register("document", func() error {
		checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := deps.Store.Load(checkCtx)
		return err
	})

	// Падаем сразу, если документ существует, но не парсится: обслуживать
	// запросы поверх нечитаемого файла бессмысленно.
	if _, err := deps.Store.Load(ctx); err != nil {
		return err
	}

	srv := startMetricsServer(cfg.MetricsAddr, logger, healthHandler)
	logger.WithField("document", cfg.DocumentPath).Info("хранилище каталога готово")

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
	shutdownHTTP(srv, logger)
	return ctx.Err()
}

// startMetricsServer запускает HTTP-обработчики /metrics, /healthz и /livez.
func startMetricsServer(addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()
	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}
