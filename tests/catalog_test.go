package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Omc12/StockSimple/internal/dto"
	"github.com/Omc12/StockSimple/internal/handler"
	"github.com/Omc12/StockSimple/internal/middleware"
	"github.com/Omc12/StockSimple/internal/model"
	"github.com/Omc12/StockSimple/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newCatalog() (service.CatalogService, *stubProductRepo) {
	repo := newStubProductRepo()
	return service.NewCatalogService(repo), repo
}

// ── Tests: Create ─────────────────────────────────────────────────────────────

func TestCreateProduct_Success(t *testing.T) {
	svc, _ := newCatalog()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Widget", SKU: "W1",
		Cost: decimal.NewFromFloat(12.50), CurrentStock: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "W1", resp.SKU)
	assert.Equal(t, 4, resp.CurrentStock)
	assert.Equal(t, 10, resp.ReorderPoint, "defaults when omitted")
}

func TestCreateProduct_ExplicitReorderPoint(t *testing.T) {
	svc, _ := newCatalog()

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Widget", SKU: "W1",
		Cost: decimal.NewFromFloat(12.50), ReorderPoint: intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ReorderPoint)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc, _ := newCatalog()

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Widget", SKU: "W1", Cost: decimal.NewFromFloat(1),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Another", SKU: "W1", Cost: decimal.NewFromFloat(2),
	})
	assert.ErrorIs(t, err, service.ErrSKUTaken)
}

func TestCreateProduct_StorageFailureIsNotAConflict(t *testing.T) {
	svc, repo := newCatalog()
	repo.createErr = gorm.ErrInvalidDB

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Widget", SKU: "W1", Cost: decimal.NewFromFloat(1),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrSKUTaken)
}

func TestProductsEndpoint_StorageFailureReturns500(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	products.createErr = gorm.ErrInvalidDB
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	w := doAPIRequest(t, r, http.MethodPost, "/products", tok, dto.CreateProductRequest{
		Name: "Widget", SKU: "W1", Cost: decimal.NewFromFloat(1),
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ── Tests: Read ───────────────────────────────────────────────────────────────

func TestListProducts_SortedByName(t *testing.T) {
	svc, repo := newCatalog()
	seedProduct(repo, "Zebra", "Z1", 1, 0)
	seedProduct(repo, "Apple", "A1", 1, 0)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Apple", listed[0].Name)
	assert.Equal(t, "Zebra", listed[1].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, _ := newCatalog()

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// ── Tests: Update ─────────────────────────────────────────────────────────────

func TestUpdateBySKU_Partial(t *testing.T) {
	svc, repo := newCatalog()
	seedProduct(repo, "Widget", "W1", 7, 5)

	resp, err := svc.UpdateBySKU(context.Background(), "W1", dto.UpdateProductRequest{
		Name: strPtr("Widget Pro"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", resp.Name)
	// Untouched fields survive a partial update.
	assert.Equal(t, 7, resp.CurrentStock)
	assert.Equal(t, 5, resp.ReorderPoint)
}

func TestUpdateBySKU_ReorderPointAffectsAlerts(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	seedProduct(products, "Widget", "W1", 7, 5)
	catalog := service.NewCatalogService(products)
	ledger := newLedger(products, movements)

	alerts, err := ledger.Alerts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)

	_, err = catalog.UpdateBySKU(context.Background(), "W1", dto.UpdateProductRequest{
		ReorderPoint: intPtr(8),
	})
	require.NoError(t, err)

	alerts, err = ledger.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "W1", alerts[0].SKU)
}

func TestUpdateBySKU_NotFound(t *testing.T) {
	svc, _ := newCatalog()

	_, err := svc.UpdateBySKU(context.Background(), "NOPE", dto.UpdateProductRequest{
		Name: strPtr("x"),
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// ── Tests: Delete ─────────────────────────────────────────────────────────────

func TestDeleteProduct_HiddenButHistoryKept(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	p := seedProduct(products, "Widget", "W1", 10, 5)
	catalog := service.NewCatalogService(products)
	ledger := newLedger(products, movements)

	record(t, ledger, p.ID, 2, model.MovementOut)

	require.NoError(t, catalog.Delete(context.Background(), p.ID))

	_, err := catalog.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	listed, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Movement history outlives the product.
	history, err := ledger.ListMovements(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, _ := newCatalog()
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteProduct_MovementsRejectedAfter(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	p := seedProduct(products, "Widget", "W1", 10, 5)
	catalog := service.NewCatalogService(products)
	ledger := newLedger(products, movements)

	require.NoError(t, catalog.Delete(context.Background(), p.ID))

	_, err := ledger.RecordMovement(context.Background(), uuid.New(), dto.RecordMovementRequest{
		ProductID: p.ID.String(), Quantity: 1, Type: model.MovementIn,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// ── Tests: HTTP layer ────────────────────────────────────────────────────────

func apiRouter(catalog service.CatalogService, ledger service.LedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.JWTAuth(testSecret))

	productsH := handler.NewProductsHandler(catalog)
	movementsH := handler.NewMovementsHandler(ledger)
	dashboardH := handler.NewDashboardHandler(ledger)

	r.GET("/products", productsH.List)
	r.POST("/products", productsH.Create)
	r.GET("/products/:id", productsH.GetByID)
	r.PUT("/products/:sku", productsH.UpdateBySKU)
	r.DELETE("/products/:id", productsH.Delete)
	r.POST("/movements", movementsH.Record)
	r.GET("/movements", movementsH.List)
	r.GET("/dashboard/alerts", dashboardH.Alerts)
	return r
}

func doAPIRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestProductsEndpoint_CreateAndFetch(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	w := doAPIRequest(t, r, http.MethodPost, "/products", tok, dto.CreateProductRequest{
		Name: "Widget", SKU: "W1", Cost: decimal.NewFromFloat(9.99), CurrentStock: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doAPIRequest(t, r, http.MethodGet, "/products/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAPIRequest(t, r, http.MethodGet, "/products/not-a-uuid", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductsEndpoint_DuplicateSKUConflict(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	body := dto.CreateProductRequest{Name: "Widget", SKU: "W1", Cost: decimal.NewFromFloat(1)}
	w := doAPIRequest(t, r, http.MethodPost, "/products", tok, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doAPIRequest(t, r, http.MethodPost, "/products", tok, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProductsEndpoint_ValidationFailure(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	// missing name and sku
	w := doAPIRequest(t, r, http.MethodPost, "/products", tok, map[string]any{"cost": 5})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMovementsEndpoint_RecordAttributesUser(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	p := seedProduct(products, "Widget", "W1", 10, 5)
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	userID := uuid.NewString()
	tok := signTestToken(t, userID, time.Hour)

	w := doAPIRequest(t, r, http.MethodPost, "/movements", tok, dto.RecordMovementRequest{
		ProductID: p.ID.String(), Quantity: 4, Type: "out", Reason: "damaged",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.RecordMovementResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.NewStock)
	assert.Equal(t, userID, resp.Movement.UserID)
	assert.Equal(t, "damaged", resp.Movement.Reason)
}

func TestMovementsEndpoint_RejectsBadType(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	p := seedProduct(products, "Widget", "W1", 10, 5)
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	w := doAPIRequest(t, r, http.MethodPost, "/movements", tok, map[string]any{
		"productId": p.ID.String(), "quantity": 4, "type": "sideways",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMovementsEndpoint_RejectsZeroQuantity(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	p := seedProduct(products, "Widget", "W1", 10, 5)
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	w := doAPIRequest(t, r, http.MethodPost, "/movements", tok, map[string]any{
		"productId": p.ID.String(), "quantity": 0, "type": "in",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDashboardAlertsEndpoint(t *testing.T) {
	products, movements := newStubProductRepo(), newStubMovementRepo()
	seedProduct(products, "Low", "L1", 2, 5)
	seedProduct(products, "Fine", "F1", 50, 5)
	r := apiRouter(service.NewCatalogService(products), newLedger(products, movements))
	tok := signTestToken(t, uuid.NewString(), time.Hour)

	w := doAPIRequest(t, r, http.MethodGet, "/dashboard/alerts", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts []dto.AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "L1", alerts[0].SKU)
	assert.Equal(t, dto.AlertLowStock, alerts[0].Status)
}
