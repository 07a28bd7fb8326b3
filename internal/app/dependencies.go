package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/ids"
	"github.com/vladislavdragonenkov/catalog-store/internal/metrics"
	catalogsvc "github.com/vladislavdragonenkov/catalog-store/internal/service/catalog"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/catalog"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

// Dependencies содержит все зависимости приложения. Хранилище создаётся
// один раз и передаётся репозиториям явно — никакого глобального состояния.
type Dependencies struct {
	Store     *document.Store
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Customers domain.CustomerRepository
	Service   *catalogsvc.Service
	Metrics   *metrics.StoreMetrics
	Logger    *log.Entry
}

// NewDependencies создаёт и связывает зависимости приложения поверх
// документа по пути cfg.DocumentPath.
func NewDependencies(cfg Config, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	storeMetrics := metrics.NewStoreMetrics()
	store := document.New(cfg.DocumentPath, logger.WithField("layer", "store"), storeMetrics)
	gen := ids.New()

	products := catalog.NewProductRepository(store, logger.WithField("layer", "products"))
	orders := catalog.NewOrderRepository(store, gen, logger.WithField("layer", "orders"))
	customers := catalog.NewCustomerRepository(store, gen, logger.WithField("layer", "customers"))

	return &Dependencies{
		Store:     store,
		Products:  products,
		Orders:    orders,
		Customers: customers,
		Service:   catalogsvc.NewService(products, orders, customers, storeMetrics, logger.WithField("layer", "service")),
		Metrics:   storeMetrics,
		Logger:    logger,
	}
}
