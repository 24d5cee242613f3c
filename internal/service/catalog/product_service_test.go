package catalog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
	"github.com/mamadbah2/coldstore/internal/repository/repositorytest"
	"github.com/mamadbah2/coldstore/internal/service/catalog"
)

func TestCreateProductDefaultsUnit(t *testing.T) {
	store := repositorytest.NewProductStore()
	svc := catalog.NewProductService(store, nil)

	product, err := svc.CreateProduct(context.Background(), models.ProductCreate{
		Name:     "Salmon fillet",
		Category: "fish",
		Price:    32.5,
		Stock:    5.5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "kg", product.Unit)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestUpdateProductPartial(t *testing.T) {
	store := repositorytest.NewProductStore()
	svc := catalog.NewProductService(store, nil)

	created, err := svc.CreateProduct(context.Background(), models.ProductCreate{
		Name:     "Salmon fillet",
		Category: "fish",
		Price:    32.5,
		Stock:    10,
	})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	newStock := 3.0
	updated, err := svc.UpdateProduct(context.Background(), created.ID, models.ProductUpdate{Stock: &newStock})
	require.NoError(t, err)

	assert.Equal(t, 3.0, updated.Stock)
	assert.Equal(t, "Salmon fillet", updated.Name, "unset fields stay untouched")
	assert.Equal(t, 32.5, updated.Price)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must advance")
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := catalog.NewProductService(repositorytest.NewProductStore(), nil)

	name := "x"
	_, err := svc.UpdateProduct(context.Background(), "missing", models.ProductUpdate{Name: &name})
	require.ErrorIs(t, err, mongodb.ErrNotFound)
}

func TestDeleteProductRoundTrip(t *testing.T) {
	store := repositorytest.NewProductStore()
	svc := catalog.NewProductService(store, nil)

	created, err := svc.CreateProduct(context.Background(), models.ProductCreate{Name: "Salmon fillet", Category: "fish"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	_, err = svc.GetProduct(context.Background(), created.ID)
	require.ErrorIs(t, err, mongodb.ErrNotFound)

	err = svc.DeleteProduct(context.Background(), created.ID)
	require.ErrorIs(t, err, mongodb.ErrNotFound)
}

func TestSearchProducts(t *testing.T) {
	store := repositorytest.NewProductStore()
	svc := catalog.NewProductService(store, nil)

	now := time.Now().UTC()
	store.Seed(
		models.Product{ID: "p1", Name: "Salmon fillet", Price: 32.5, Stock: 5, Unit: "kg", CreatedAt: now, UpdatedAt: now},
		models.Product{ID: "p2", Name: "Smoked salmon", Price: 45, Stock: 2, Unit: "kg", CreatedAt: now, UpdatedAt: now},
		models.Product{ID: "p3", Name: "Beef shoulder", Price: 25, Stock: 9, Unit: "kg", CreatedAt: now, UpdatedAt: now},
	)

	results, err := svc.SearchProducts(context.Background(), "salmon")
	require.NoError(t, err)
	require.Len(t, results, 2, "match is case-insensitive substring")
	assert.Equal(t, "Salmon fillet", results[0].Name)

	results, err = svc.SearchProducts(context.Background(), " SALMON ")
	require.NoError(t, err)
	assert.Len(t, results, 2, "query is trimmed before matching")
}

func TestSearchProductsShortQuery(t *testing.T) {
	store := repositorytest.NewProductStore()
	// A failing store proves short queries never reach it.
	store.Err = fmt.Errorf("store must not be called")
	svc := catalog.NewProductService(store, nil)

	for _, query := range []string{"", "s", " s "} {
		results, err := svc.SearchProducts(context.Background(), query)
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.NotNil(t, results)
	}
}

func TestSearchProductsCapped(t *testing.T) {
	store := repositorytest.NewProductStore()
	svc := catalog.NewProductService(store, nil)

	now := time.Now().UTC()
	for i := 0; i < 12; i++ {
		store.Seed(models.Product{
			ID:        fmt.Sprintf("p%d", i),
			Name:      fmt.Sprintf("Salmon cut %d", i),
			Unit:      "kg",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	results, err := svc.SearchProducts(context.Background(), "salmon")
	require.NoError(t, err)
	assert.Len(t, results, 10)
}
