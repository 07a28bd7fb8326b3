// Package catalogsvc предоставляет внешним слоям (протокольному и диалоговому)
// типизированный доступ к операциям репозиториев: каждая операция адресуется
// типом сущности и именем и возвращает значение, признак отсутствия или одну
// из доменных ошибок. Рендеринг ответов — забота вызывающих слоёв.
package catalogsvc

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/metrics"
)

// Service агрегирует три репозитория каталога за одним фасадом.
type Service struct {
	products  domain.ProductRepository
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	metrics   *metrics.StoreMetrics
	logger    *log.Entry
}

// NewService конструирует фасад с зависимостями.
func NewService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	m *metrics.StoreMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{
		products:  products,
		orders:    orders,
		customers: customers,
		metrics:   m,
		logger:    logger,
	}
}

// ListProducts возвращает все товары.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	s.record("product", "list", err)
	return products, err
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	product, ok, err := s.products.Get(ctx, id)
	s.record("product", "get", err)
	return product, ok, err
}

// ProductsByCategory возвращает товары категории.
func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.products.ByCategory(ctx, category)
	s.record("product", "by_category", err)
	return products, err
}

// LowStockProducts возвращает товары с низким, но ненулевым остатком.
func (s *Service) LowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	products, err := s.products.LowStock(ctx, threshold)
	s.record("product", "low_stock", err)
	return products, err
}

// AddProduct добавляет товар.
func (s *Service) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	added, err := s.products.Add(ctx, product)
	s.record("product", "add", err)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).Warn("add product rejected")
	}
	return added, err
}

// UpdateProductStock заменяет остаток товара.
func (s *Service) UpdateProductStock(ctx context.Context, id string, stock int) (domain.Product, error) {
	updated, err := s.products.UpdateStock(ctx, id, stock)
	s.record("product", "update_stock", err)
	return updated, err
}

// ListOrders возвращает все заказы.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	s.record("order", "list", err)
	return orders, err
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, bool, error) {
	order, ok, err := s.orders.Get(ctx, id)
	s.record("order", "get", err)
	return order, ok, err
}

// OrdersByStatus возвращает заказы по статусу.
func (s *Service) OrdersByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	orders, err := s.orders.ByStatus(ctx, status)
	s.record("order", "by_status", err)
	return orders, err
}

// OrdersByCustomer возвращает заказы покупателя.
func (s *Service) OrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	orders, err := s.orders.ByCustomer(ctx, customerID)
	s.record("order", "by_customer", err)
	return orders, err
}

// OrdersByDateRange возвращает заказы за период.
func (s *Service) OrdersByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	orders, err := s.orders.ByDateRange(ctx, from, to)
	s.record("order", "by_date_range", err)
	return orders, err
}

// CreateOrder создаёт заказ.
func (s *Service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := s.orders.Create(ctx, order)
	s.record("order", "create", err)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", order.CustomerID).Warn("create order rejected")
	}
	return created, err
}

// UpdateOrder заменяет заказ.
func (s *Service) UpdateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	updated, err := s.orders.Update(ctx, order)
	s.record("order", "update", err)
	return updated, err
}

// ListCustomers возвращает всех покупателей.
func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	s.record("customer", "list", err)
	return customers, err
}

// GetCustomer возвращает покупателя по идентификатору.
func (s *Service) GetCustomer(ctx context.Context, id string) (domain.Customer, bool, error) {
	customer, ok, err := s.customers.Get(ctx, id)
	s.record("customer", "get", err)
	return customer, ok, err
}

// CustomerByEmail возвращает покупателя по email.
func (s *Service) CustomerByEmail(ctx context.Context, email string) (domain.Customer, bool, error) {
	customer, ok, err := s.customers.ByEmail(ctx, email)
	s.record("customer", "by_email", err)
	return customer, ok, err
}

// AddCustomer добавляет покупателя.
func (s *Service) AddCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	added, err := s.customers.Add(ctx, customer)
	s.record("customer", "add", err)
	if err != nil {
		s.logger.WithError(err).Warn("add customer rejected")
	}
	return added, err
}

// UpdateCustomer заменяет имя и email покупателя.
func (s *Service) UpdateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	updated, err := s.customers.Update(ctx, customer)
	s.record("customer", "update", err)
	return updated, err
}

func (s *Service) record(entity, operation string, err error) {
	s.metrics.RecordOperation(entity, operation, err)
}
