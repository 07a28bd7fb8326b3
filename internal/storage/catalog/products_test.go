package catalog_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
)

func TestProductRepository_AddAndGet(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	seedProduct(t, r, "P1", 3, 9.99)

	// Поиск по идентификатору без учёта регистра.
	product, ok, err := r.products.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "P1", product.ID)

	_, ok, err = r.products.Get(ctx, "P2")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestProductRepository_DuplicateID(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	seedProduct(t, r, "P1", 3, 9.99)

	_, err := r.products.Add(ctx, domain.Product{ID: "p1", Stock: 1})
	require.ErrorIs(t, err, domain.ErrConflict)

	products, listErr := r.products.List(ctx)
	require.NoError(t, listErr)
	require.Len(t, products, 1)
}

func TestProductRepository_ConcurrentDuplicateAdd(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			_, errs[n] = r.products.Add(ctx, domain.Product{ID: "P1", Stock: 1})
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case domain.IsConflict(err):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded, "exactly one add must win")
	require.Equal(t, attempts-1, conflicted)
}

func TestProductRepository_ValidationOnAdd(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	_, err := r.products.Add(ctx, domain.Product{ID: "", Stock: 1})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = r.products.Add(ctx, domain.Product{ID: "P1", Stock: -1})
	require.ErrorIs(t, err, domain.ErrValidation)

	products, listErr := r.products.List(ctx)
	require.NoError(t, listErr)
	require.Empty(t, products)
}

func TestProductRepository_UpdateStock(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	seedProduct(t, r, "P1", 3, 9.99)

	updated, err := r.products.UpdateStock(ctx, "P1", 10)
	require.NoError(t, err)
	require.Equal(t, 10, updated.Stock)

	_, err = r.products.UpdateStock(ctx, "P1", -5)
	require.ErrorIs(t, err, domain.ErrValidation)

	current, ok, err := r.products.Get(ctx, "P1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 10, current.Stock, "rejected update must not change stock")

	_, err = r.products.UpdateStock(ctx, "missing", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_LowStockScenario(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	seedProduct(t, r, "P1", 3, 9.99)

	low, err := r.products.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "P1", low[0].ID)

	// Нулевой остаток исключается: товар исчерпан, а не "заканчивается".
	_, err = r.products.UpdateStock(ctx, "P1", 0)
	require.NoError(t, err)

	low, err = r.products.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, low)
}

func TestProductRepository_ByCategory(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	_, err := r.products.Add(ctx, domain.Product{ID: "P1", Category: "Tools", Stock: 1})
	require.NoError(t, err)
	_, err = r.products.Add(ctx, domain.Product{ID: "P2", Category: "Food", Stock: 1})
	require.NoError(t, err)

	tools, err := r.products.ByCategory(ctx, "tools")
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "P1", tools[0].ID)
}

func TestProductRepository_ConcurrentAddsDistinct(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := r.products.Add(ctx, domain.Product{ID: "P" + strconv.Itoa(n), Stock: 1})
			if err != nil {
				t.Errorf("add failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	products, err := r.products.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, writers)
}
