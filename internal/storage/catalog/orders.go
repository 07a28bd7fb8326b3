package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

// Префикс системных идентификаторов заказов.
const orderIDPrefix = "ORD"

// OrderRepository — репозиторий заказов поверх документного хранилища.
// Идентификатор и createdAt назначаются системой; значения от вызывающей
// стороны игнорируются. Ссылочная целостность (товары и покупатель)
// проверяется на том же снимке документа, что и запись.
type OrderRepository struct {
	orders collection[domain.Order]
	idgen  domain.IdentifierGenerator
	now    func() time.Time
	logger *log.Entry
}

// NewOrderRepository конструирует репозиторий заказов.
func NewOrderRepository(store *document.Store, idgen domain.IdentifierGenerator, logger *log.Entry) *OrderRepository {
	if logger == nil {
		logger = log.WithField("component", "order-repository")
	}
	return &OrderRepository{
		orders: collection[domain.Order]{
			store: store,
			slice: func(doc *document.Document) *[]domain.Order { return &doc.Orders },
			id:    orderID,
		},
		idgen:  idgen,
		now:    time.Now,
		logger: logger,
	}
}

// List возвращает все заказы.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.orders.list(ctx)
}

// Get возвращает заказ по идентификатору; отсутствие — не ошибка.
func (r *OrderRepository) Get(ctx context.Context, id string) (domain.Order, bool, error) {
	return r.orders.get(ctx, id)
}

// ByStatus возвращает заказы с данным статусом (без учёта регистра).
func (r *OrderRepository) ByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return r.orders.filter(ctx, func(o domain.Order) bool {
		return strings.EqualFold(o.Status, status)
	})
}

// ByCustomer возвращает заказы покупателя.
func (r *OrderRepository) ByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.orders.filter(ctx, func(o domain.Order) bool {
		return strings.EqualFold(o.CustomerID, customerID)
	})
}

// ByDateRange возвращает заказы, созданные в [from, to] включительно.
// Нулевое время снимает соответствующую границу.
func (r *OrderRepository) ByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	return r.orders.filter(ctx, func(o domain.Order) bool {
		if !from.IsZero() && o.CreatedAt.Before(from) {
			return false
		}
		if !to.IsZero() && o.CreatedAt.After(to) {
			return false
		}
		return true
	})
}

// Create сохраняет новый заказ. Под эксклюзивной секцией проверяются
// покупатель и товары (domain.ErrReferential при нарушении), списываются
// остатки, назначаются идентификатор "ORD-<token>", итоговая сумма и
// createdAt в UTC. При любой ошибке документ остаётся нетронутым.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := validateItems(order.Items); err != nil {
		return domain.Order{}, err
	}

	created, err := r.orders.add(ctx, order, func(doc *document.Document, candidate *domain.Order) error {
		if !customerExists(candidate.CustomerID, doc.Customers) {
			return fmt.Errorf("%w: customer %q", domain.ErrReferential, candidate.CustomerID)
		}
		if missing := missingProducts(candidate.Items, doc.Products); len(missing) > 0 {
			return fmt.Errorf("%w: products %s", domain.ErrReferential, strings.Join(missing, ", "))
		}
		if err := decrementStock(doc.Products, candidate.Items); err != nil {
			return err
		}
		candidate.ID = freshID(r.idgen, orderIDPrefix, doc.Orders, orderID)
		candidate.TotalAmount = candidate.ItemsTotal()
		candidate.CreatedAt = r.now().UTC()
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	r.logger.WithFields(log.Fields{
		"order_id":    created.ID,
		"customer_id": created.CustomerID,
		"items":       len(created.Items),
		"total":       created.TotalAmount,
	}).Info("order created")
	return created, nil
}

// Update полностью заменяет заказ, сохраняя идентификатор и createdAt.
// Ссылочные проверки выполняются заново; остатки товаров не корректируются —
// списание происходит только при создании заказа.
func (r *OrderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := validateItems(order.Items); err != nil {
		return domain.Order{}, err
	}

	updated, err := r.orders.update(ctx, order.ID, func(doc *document.Document, current *domain.Order) error {
		if !customerExists(order.CustomerID, doc.Customers) {
			return fmt.Errorf("%w: customer %q", domain.ErrReferential, order.CustomerID)
		}
		if missing := missingProducts(order.Items, doc.Products); len(missing) > 0 {
			return fmt.Errorf("%w: products %s", domain.ErrReferential, strings.Join(missing, ", "))
		}
		replacement := order
		replacement.ID = current.ID
		replacement.CreatedAt = current.CreatedAt
		replacement.TotalAmount = replacement.ItemsTotal()
		*current = replacement
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	r.logger.WithFields(log.Fields{"order_id": updated.ID, "status": updated.Status}).Info("order updated")
	return updated, nil
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
