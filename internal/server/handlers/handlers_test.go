package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coldstore/internal/config"
	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/repositorytest"
	"github.com/mamadbah2/coldstore/internal/server/handlers"
	"github.com/mamadbah2/coldstore/internal/server/router"
	catalogsvc "github.com/mamadbah2/coldstore/internal/service/catalog"
	dashboardsvc "github.com/mamadbah2/coldstore/internal/service/dashboard"
	salessvc "github.com/mamadbah2/coldstore/internal/service/sales"
)

type testEnv struct {
	engine   *gin.Engine
	products *repositorytest.ProductStore
	clients  *repositorytest.ClientStore
	sales    *repositorytest.SaleStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := repositorytest.NewProductStore()
	clients := repositorytest.NewClientStore()
	saleStore := repositorytest.NewSaleStore()

	productSvc := catalogsvc.NewProductService(products, nil)
	clientSvc := catalogsvc.NewClientService(clients, nil)
	saleSvc := salessvc.NewService(products, clients, saleStore, nil, nil)
	dashboardSvc := dashboardsvc.NewService(products, clients, saleStore, nil)

	engine := router.New(
		handlers.NewProductHandler(productSvc, nil),
		handlers.NewClientHandler(clientSvc, nil),
		handlers.NewSaleHandler(saleSvc, nil),
		handlers.NewDashboardHandler(dashboardSvc, nil),
		config.CORSConfig{AllowedOrigins: []string{"*"}},
		nil,
	)

	return &testEnv{engine: engine, products: products, clients: clients, sales: saleStore}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func seedProduct(e *testEnv, id, name string, price, stock float64) {
	now := time.Now().UTC()
	e.products.Seed(models.Product{
		ID: id, Name: name, Category: "fish", Price: price, Stock: stock,
		Unit: "kg", CreatedAt: now, UpdatedAt: now,
	})
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRoot(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["message"], "operational")
}

func TestProductCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/products", models.ProductCreate{
		Name: "Salmon fillet", Category: "fish", Price: 32.5, Stock: 5.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[models.Product](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "kg", created.Unit)

	rec = env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[models.Product](t, rec)
	assert.Equal(t, created.Name, fetched.Name)

	rec = env.do(t, http.MethodPut, "/api/products/"+created.ID, map[string]any{"stock": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Product](t, rec)
	assert.Equal(t, 3.0, updated.Stock)
	assert.Equal(t, "Salmon fillet", updated.Name)

	rec = env.do(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductListEmpty(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestProductCreateRejectsBadPayload(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/products", map[string]any{"price": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductSearchRoute(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(env, "p1", "Salmon fillet", 32.5, 5)
	seedProduct(env, "p2", "Beef shoulder", 25, 9)

	rec := env.do(t, http.MethodGet, "/api/products/search/salm", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[[]models.ProductSuggestion](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)

	rec = env.do(t, http.MethodGet, "/api/products/search/s", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// Only the search segment dispatches through the two-wildcard route.
	rec = env.do(t, http.MethodGet, "/api/products/other/salm", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/clients", models.ClientCreate{Name: "Mme Diallo", Phone: "620000000"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[models.Client](t, rec)
	require.NotEmpty(t, created.ID)

	rec = env.do(t, http.MethodPut, "/api/clients/"+created.ID, map[string]any{"phone": "621111111"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Client](t, rec)
	assert.Equal(t, "621111111", updated.Phone)
	assert.Equal(t, "Mme Diallo", updated.Name)

	rec = env.do(t, http.MethodDelete, "/api/clients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/clients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSaleEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(env, "p1", "Salmon fillet", 32.5, 5.5)

	rec := env.do(t, http.MethodPost, "/api/sales", models.SaleCreate{
		Items:    []models.SaleItemRequest{{ProductID: "p1", Quantity: 2.3}},
		Discount: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	sale := decode[models.Sale](t, rec)
	assert.InDelta(t, 74.75, sale.Subtotal, 0.01)
	assert.InDelta(t, 69.75, sale.Total, 0.01)
	assert.Equal(t, models.AnonymousClient, sale.ClientName)

	rec = env.do(t, http.MethodGet, "/api/sales/"+sale.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSaleInsufficientStockEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(env, "p1", "Salmon fillet", 10, 8)

	rec := env.do(t, http.MethodPost, "/api/sales", models.SaleCreate{
		Items: []models.SaleItemRequest{{ProductID: "p1", Quantity: 18}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["error"], "Salmon fillet")
}

func TestCreateSaleMissingProductEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/sales", models.SaleCreate{
		Items: []models.SaleItemRequest{{ProductID: "ghost", Quantity: 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Contains(t, body["error"], "ghost")
}

func TestCreateSaleCreditPolicyEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(env, "p1", "Salmon fillet", 10, 8)

	rec := env.do(t, http.MethodPost, "/api/sales", models.SaleCreate{
		ClientName:    "Mme Diallo",
		PaymentMethod: models.PaymentCredit,
		Items:         []models.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaleNotFoundEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/sales/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(env, "p1", "Salmon fillet", 10, 2)
	seedProduct(env, "p2", "Beef shoulder", 25, 9)
	env.sales.Seed(models.Sale{ID: "s1", Total: 40, CreatedAt: time.Now().UTC()})

	rec := env.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.DashboardStats](t, rec)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.TotalSales)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.InDelta(t, 40, stats.TodayRevenue, 0.01)
}
