package catalog

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

// ProductRepository — репозиторий товаров поверх документного хранилища.
// Идентификаторы товаров задаёт вызывающая сторона; дубликаты отклоняются.
type ProductRepository struct {
	products collection[domain.Product]
	logger   *log.Entry
}

// NewProductRepository конструирует репозиторий товаров.
func NewProductRepository(store *document.Store, logger *log.Entry) *ProductRepository {
	if logger == nil {
		logger = log.WithField("component", "product-repository")
	}
	return &ProductRepository{
		products: collection[domain.Product]{
			store: store,
			slice: func(doc *document.Document) *[]domain.Product { return &doc.Products },
			id:    productID,
		},
		logger: logger,
	}
}

// List возвращает все товары.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.products.list(ctx)
}

// Get возвращает товар по идентификатору; отсутствие — не ошибка.
func (r *ProductRepository) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	return r.products.get(ctx, id)
}

// ByCategory возвращает товары заданной категории (без учёта регистра).
func (r *ProductRepository) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.products.filter(ctx, func(p domain.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// LowStock возвращает товары с остатком в интервале (0, threshold]:
// нулевой остаток — не "низкий", а исчерпанный, и в выборку не входит.
func (r *ProductRepository) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	return r.products.filter(ctx, func(p domain.Product) bool {
		return p.Stock > 0 && p.Stock <= threshold
	})
}

// Add сохраняет новый товар. Повторный идентификатор — domain.ErrConflict,
// отрицательный остаток — domain.ErrValidation; документ при этом не меняется.
func (r *ProductRepository) Add(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	if product.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: product stock must be non-negative, got %d", domain.ErrValidation, product.Stock)
	}

	added, err := r.products.add(ctx, product, func(doc *document.Document, candidate *domain.Product) error {
		if containsID(doc.Products, productID, candidate.ID) {
			return fmt.Errorf("%w: product %s", domain.ErrConflict, candidate.ID)
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	r.logger.WithFields(log.Fields{"product_id": added.ID, "stock": added.Stock}).Debug("product added")
	return added, nil
}

// UpdateStock заменяет остаток товара. Отрицательное значение отклоняется
// до захвата секции, прежний остаток остаётся нетронутым.
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) (domain.Product, error) {
	if stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: product stock must be non-negative, got %d", domain.ErrValidation, stock)
	}

	updated, err := r.products.update(ctx, id, func(doc *document.Document, current *domain.Product) error {
		current.Stock = stock
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	r.logger.WithFields(log.Fields{"product_id": updated.ID, "stock": updated.Stock}).Debug("product stock updated")
	return updated, nil
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
