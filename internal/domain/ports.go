package domain

import (
	"context"
	"time"
)

// IdentifierGenerator выдаёт устойчивые к коллизиям идентификаторы вида "<PREFIX>-<token>".
// Репозиторий обязан сверить результат с существующими идентификаторами и при
// совпадении запросить новый, а не возвращать ложный конфликт вызывающей стороне.
type IdentifierGenerator interface {
	Next(prefix string) string
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// List возвращает все товары; пустой срез — не ошибка.
	List(ctx context.Context) ([]Product, error)
	// Get возвращает товар по идентификатору; отсутствие — не ошибка.
	Get(ctx context.Context, id string) (Product, bool, error)
	// ByCategory возвращает товары заданной категории.
	ByCategory(ctx context.Context, category string) ([]Product, error)
	// LowStock возвращает товары с остатком в интервале (0, threshold].
	LowStock(ctx context.Context, threshold int) ([]Product, error)
	// Add сохраняет новый товар; ErrConflict при повторном идентификаторе.
	Add(ctx context.Context, product Product) (Product, error)
	// UpdateStock заменяет остаток товара; ErrValidation при отрицательном значении.
	UpdateStock(ctx context.Context, id string, stock int) (Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, bool, error)
	// ByStatus сравнивает статус без учёта регистра.
	ByStatus(ctx context.Context, status string) ([]Order, error)
	ByCustomer(ctx context.Context, customerID string) ([]Order, error)
	// ByDateRange фильтрует по createdAt; нулевое время снимает соответствующую границу.
	ByDateRange(ctx context.Context, from, to time.Time) ([]Order, error)
	// Create сохраняет новый заказ с сгенерированным идентификатором.
	// ErrReferential — при ссылке на несуществующий товар или покупателя.
	Create(ctx context.Context, order Order) (Order, error)
	// Update полностью заменяет заказ, кроме идентификатора и createdAt.
	Update(ctx context.Context, order Order) (Order, error)
}

// CustomerRepository описывает требования к хранилищу покупателей.
type CustomerRepository interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id string) (Customer, bool, error)
	// ByEmail возвращает не более одного покупателя; поиск без учёта регистра.
	ByEmail(ctx context.Context, email string) (Customer, bool, error)
	// Add сохраняет нового покупателя с сгенерированным идентификатором.
	Add(ctx context.Context, customer Customer) (Customer, error)
	// Update заменяет только имя и email покупателя.
	Update(ctx context.Context, customer Customer) (Customer, error)
}
