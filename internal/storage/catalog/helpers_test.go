package catalog_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/ids"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/catalog"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

type repos struct {
	store     *document.Store
	products  *catalog.ProductRepository
	orders    *catalog.OrderRepository
	customers *catalog.CustomerRepository
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "test")
}

func newRepos(t *testing.T) repos {
	t.Helper()
	logger := testLogger()
	store := document.New(filepath.Join(t.TempDir(), "catalog.json"), logger, nil)
	gen := ids.New()
	return repos{
		store:     store,
		products:  catalog.NewProductRepository(store, logger),
		orders:    catalog.NewOrderRepository(store, gen, logger),
		customers: catalog.NewCustomerRepository(store, gen, logger),
	}
}

func seedProduct(t *testing.T, r repos, id string, stock int, price float64) domain.Product {
	t.Helper()
	product, err := r.products.Add(context.Background(), domain.Product{
		ID:       id,
		Name:     "Product " + id,
		Category: "general",
		Price:    price,
		Stock:    stock,
	})
	require.NoError(t, err)
	return product
}

func seedCustomer(t *testing.T, r repos, email string) domain.Customer {
	t.Helper()
	customer, err := r.customers.Add(context.Background(), domain.Customer{
		Name:  "Customer " + email,
		Email: email,
		City:  "Springfield",
	})
	require.NoError(t, err)
	return customer
}

func TestRepositories_EmptyStore(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	products, err := r.products.List(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	orders, err := r.orders.List(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	customers, err := r.customers.List(ctx)
	require.NoError(t, err)
	require.Empty(t, customers)
}
