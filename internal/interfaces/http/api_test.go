package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/internal/application/dto"
	"github.com/jhoicas/Bodegas-api/internal/application/engine"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Bodegas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Bodegas-api/pkg/jwt"
	"github.com/jhoicas/Bodegas-api/pkg/logger"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store, err := memory.LoadDemo()
	require.NoError(t, err)
	e := engine.New(store, nil, logger.Nop().Zerolog())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC: e.Warehouses,
		InventoryUC: e.Inventory,
		OrderUC:     e.Orders,
		PickingPDF:  pdf.NewPickingListGenerator(),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
	})
	return &apiFixture{app: app, store: store}
}

func bearer(t *testing.T, userID, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPI_PlaceYConsultarRack(t *testing.T) {
	f := newAPI(t)
	manager := bearer(t, "u-manager", "c-1", "manager")

	var inv dto.InventoryResponse
	status := f.do(t, http.MethodPost, "/api/inventory", manager,
		dto.PlaceInventoryRequest{RackID: "r-2", ProductID: "p-x", Quantity: 2}, &inv)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 2, inv.Quantity)
	assert.Equal(t, "10", inv.TotalVolume.String())

	var rack dto.RackResponse
	status = f.do(t, http.MethodGet, "/api/racks/r-2", manager, nil, &rack)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "20", rack.RemainingCapacity.String())
	assert.Len(t, rack.Items, 2)
}

func TestAPI_ErroresDeDominio(t *testing.T) {
	f := newAPI(t)
	manager := bearer(t, "u-manager", "c-1", "manager")
	vendor := bearer(t, "u-vendor", "", "vendor")

	var e dto.ErrorResponse
	status := f.do(t, http.MethodPost, "/api/inventory", manager,
		dto.PlaceInventoryRequest{RackID: "r-1", ProductID: "p-x", Quantity: 3}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CAPACITY_EXCEEDED", e.Code)

	status = f.do(t, http.MethodPost, "/api/inventory", manager,
		dto.PlaceInventoryRequest{RackID: "r-404", ProductID: "p-x", Quantity: 1}, &e)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", e.Code)

	status = f.do(t, http.MethodPost, "/api/inventory", vendor,
		dto.PlaceInventoryRequest{RackID: "r-1", ProductID: "p-x", Quantity: 1}, &e)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", e.Code)

	status = f.do(t, http.MethodPost, "/api/inventory/remove", manager,
		dto.RemoveInventoryRequest{RackID: "r-1", ProductID: "p-x", Quantity: 11}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
}

func TestAPI_CicloDeVidaOrdenDesdeBodega(t *testing.T) {
	f := newAPI(t)
	manager := bearer(t, "u-manager", "c-1", "manager")

	var order dto.OrderResponse
	status := f.do(t, http.MethodPost, "/api/orders", manager, dto.CreateOrderRequest{
		OrderType:   "from_warehouse",
		SupplierID:  "wh-1",
		RecipientID: "v-1",
		Items:       []dto.OrderItemRequest{{ProductID: "p-x", Quantity: 8}},
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "new", order.Status)
	assert.Equal(t, "80", order.TotalPrice.String())
	assert.Equal(t, "40", order.TotalVolume.String())

	var plan dto.PlanResponse
	var e dto.ErrorResponse
	status = f.do(t, http.MethodGet, "/api/orders/"+order.ID+"/send-plan", manager, nil, &e)
	assert.Equal(t, http.StatusConflict, status, "plan de salida solo en submitted")

	status = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/confirm", manager,
		dto.ConfirmOrderRequest{TransportID: "t-small"}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CAPACITY_EXCEEDED", e.Code)
	assert.Equal(t, "Transport capacity is not enough", e.Message)

	status = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/confirm", manager,
		dto.ConfirmOrderRequest{TransportID: "t-big"}, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "submitted", order.Status)

	status = f.do(t, http.MethodGet, "/api/orders/"+order.ID+"/send-plan", manager, nil, &plan)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "r-1", plan.Allocations[0].RackID)
	assert.Equal(t, 8, plan.Allocations[0].Quantity)

	status = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/send", manager, nil, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processing", order.Status)

	inv, ok := f.store.Inventory("r-1", "p-x")
	require.True(t, ok)
	assert.Equal(t, 2, inv.Quantity)

	status = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/deliver", manager, nil, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "delivered", order.Status)

	var e2 dto.ErrorResponse
	status = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/receive", manager, nil, &e2)
	assert.Equal(t, http.StatusNotFound, status, "solo el destinatario recibe")

	vendor := bearer(t, "u-vendor", "", "vendor")
	status = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/receive", vendor, nil, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "finished", order.Status)
}

func TestAPI_PickingListPDF(t *testing.T) {
	f := newAPI(t)
	manager := bearer(t, "u-manager", "c-1", "manager")

	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/orders", manager, dto.CreateOrderRequest{
		OrderType:   "from_warehouse",
		SupplierID:  "wh-1",
		RecipientID: "v-1",
		Items:       []dto.OrderItemRequest{{ProductID: "p-z", Quantity: 2}},
	}, &order))
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/confirm", manager,
		dto.ConfirmOrderRequest{TransportID: "t-big"}, &order))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID+"/picking-list", nil)
	req.Header.Set("Authorization", manager)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	req = httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID+"/picking-list?direction=sideways", nil)
	req.Header.Set("Authorization", manager)
	resp2, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestAPI_ThrownItemsSoloManager(t *testing.T) {
	f := newAPI(t)
	manager := bearer(t, "u-manager", "c-1", "manager")
	supervisor := bearer(t, "u-supervisor", "c-1", "supervisor")

	var removed dto.RemoveInventoryResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/inventory/remove", supervisor,
		dto.RemoveInventoryRequest{RackID: "r-2", ProductID: "p-z", Quantity: 1, WriteOff: true, Reason: "vencido"}, &removed))
	assert.Equal(t, 4, removed.RemainingQuantity)
	assert.NotEmpty(t, removed.ThrownItemID)

	var summary dto.ThrownSummaryResponse
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/thrown-items", manager, nil, &summary))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].TotalQuantity)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/thrown-items", supervisor, nil, &e))
}
