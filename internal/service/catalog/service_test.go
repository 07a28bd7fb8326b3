package catalogsvc_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/catalog-store/internal/domain"
	"github.com/vladislavdragonenkov/catalog-store/internal/ids"
	catalogsvc "github.com/vladislavdragonenkov/catalog-store/internal/service/catalog"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/catalog"
	"github.com/vladislavdragonenkov/catalog-store/internal/storage/document"
)

func newService(t *testing.T) *catalogsvc.Service {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	entry := logger.WithField("component", "test")

	store := document.New(filepath.Join(t.TempDir(), "catalog.json"), entry, nil)
	gen := ids.New()
	return catalogsvc.NewService(
		catalog.NewProductRepository(store, entry),
		catalog.NewOrderRepository(store, gen, entry),
		catalog.NewCustomerRepository(store, gen, entry),
		nil,
		entry,
	)
}

func TestService_ProductLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	added, err := svc.AddProduct(ctx, domain.Product{ID: "P1", Category: "tools", Stock: 3, Price: 9.99})
	require.NoError(t, err)
	require.Equal(t, "P1", added.ID)

	low, err := svc.LowStockProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)

	_, err = svc.UpdateProductStock(ctx, "P1", 0)
	require.NoError(t, err)

	low, err = svc.LowStockProducts(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, low)
}

func TestService_OrderFlow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, domain.Product{ID: "P1", Stock: 10, Price: 5})
	require.NoError(t, err)
	customer, err := svc.AddCustomer(ctx, domain.Customer{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	created, err := svc.CreateOrder(ctx, domain.Order{
		CustomerID: customer.ID,
		Status:     "pending",
		Items:      []domain.OrderItem{{ProductID: "P1", Quantity: 2, UnitPrice: 5}},
	})
	require.NoError(t, err)

	found, ok, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 10.0, found.TotalAmount, 1e-9)

	byCustomer, err := svc.OrdersByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)

	byEmail, ok, err := svc.CustomerByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, customer.ID, byEmail.ID)
}

func TestService_ErrorsPassThrough(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, domain.Order{
		CustomerID: "CUST-ghost",
		Items:      []domain.OrderItem{{ProductID: "ghost", Quantity: 1, UnitPrice: 1}},
	})
	require.ErrorIs(t, err, domain.ErrReferential)

	_, err = svc.UpdateProductStock(ctx, "ghost", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
