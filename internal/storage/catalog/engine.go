// Package catalog реализует репозитории каталога поверх документного хранилища.
// Один обобщённый CRUD-движок инстанцируется трижды — товары, заказы,
// покупатели — вместо дублирования логики load/save по трём классам.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

// collection — обобщённый движок доступа к одной коллекции документа.
type collection[T any] struct {
	store *document.Store
	// slice возвращает указатель на срез коллекции внутри документа.
	slice func(doc *document.Document) *[]T
	// id возвращает строковый идентификатор сущности.
	id func(T) string
}

// list возвращает копию коллекции; пустой документ — пустой срез, не ошибка.
func (c collection[T]) list(ctx context.Context) ([]T, error) {
	var out []T
	err := c.store.Shared(ctx, func(doc document.Document) error {
		src := *c.slice(&doc)
		out = make([]T, len(src))
		copy(out, src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// get ищет сущность по идентификатору без учёта регистра; отсутствие — не ошибка.
func (c collection[T]) get(ctx context.Context, id string) (T, bool, error) {
	var (
		found T
		ok    bool
	)
	err := c.store.Shared(ctx, func(doc document.Document) error {
		items := *c.slice(&doc)
		for i := range items {
			if strings.EqualFold(c.id(items[i]), id) {
				found = items[i]
				ok = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return found, ok, nil
}

// filter возвращает сущности, удовлетворяющие предикату, в порядке документа.
func (c collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	out := make([]T, 0)
	err := c.store.Shared(ctx, func(doc document.Document) error {
		for _, item := range *c.slice(&doc) {
			if keep(item) {
				out = append(out, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// add выполняет цикл добавления под эксклюзивной секцией. Callback prepare
// валидирует кандидата на консистентном снимке документа и дорабатывает его
// (идентификатор, вычисляемые поля); при ошибке документ не записывается.
func (c collection[T]) add(ctx context.Context, candidate T, prepare func(doc *document.Document, candidate *T) error) (T, error) {
	err := c.store.Exclusive(ctx, func(doc *document.Document) (bool, error) {
		if err := prepare(doc, &candidate); err != nil {
			return false, err
		}
		target := c.slice(doc)
		*target = append(*target, candidate)
		return true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return candidate, nil
}

// update находит сущность по идентификатору и применяет замену полей под
// эксклюзивной секцией. Отсутствие цели — domain.ErrNotFound.
func (c collection[T]) update(ctx context.Context, id string, apply func(doc *document.Document, current *T) error) (T, error) {
	var updated T
	err := c.store.Exclusive(ctx, func(doc *document.Document) (bool, error) {
		items := *c.slice(doc)
		for i := range items {
			if strings.EqualFold(c.id(items[i]), id) {
				if err := apply(doc, &items[i]); err != nil {
					return false, err
				}
				updated = items[i]
				return true, nil
			}
		}
		return false, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// containsID сообщает, занят ли идентификатор в коллекции (без учёта регистра).
func containsID[T any](items []T, id func(T) string, candidate string) bool {
	for i := range items {
		if strings.EqualFold(id(items[i]), candidate) {
			return true
		}
	}
	return false
}

// freshID запрашивает у генератора идентификатор, не занятый в коллекции.
// При коллизии генератор опрашивается повторно вместо возврата ложного
// конфликта вызывающей стороне.
func freshID[T any](gen domain.IdentifierGenerator, prefix string, items []T, id func(T) string) string {
	for {
		candidate := gen.Next(prefix)
		if !containsID(items, id, candidate) {
			return candidate
		}
	}
}
