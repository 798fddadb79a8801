package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/report"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	ledger "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/geo"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/metrics"
)

func newTestApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	s := memory.New()
	stockUC := inventory.NewStockMovementUseCase(s, s.Movements(), s.Stock(), s.Products(), ledger.CheckPerItem, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:       usecase.NewProductUseCase(s.Products(), s.Movements()),
		StockMovementUC: stockUC,
		GeodataUC:       usecase.NewGeodataUseCase(s.Polygons(), geo.Codec{}),
		StockReportUC:   report.NewStockReportUseCase(s.Products(), s.Stock(), pdf.NewMarotoStockReport(), "Estoque"),
		JWTSecret:       jwtSecret,
		ServiceName:     "estoque-api",
		StoreDriver:     "memory",
		Metrics:         metrics.New("estoque_test"),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func createProduct(t *testing.T, app *fiber.App, name, price string) dto.ProductResponse {
	t.Helper()
	resp, body := do(t, app, http.MethodPost, "/products/", `{"name":"`+name+`","price":`+price+`}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	return p
}

func stockOf(t *testing.T, app *fiber.App, id int64) int64 {
	t.Helper()
	resp, body := do(t, app, http.MethodGet, "/products/"+itoa(id)+"/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var s dto.ProductStockResponse
	require.NoError(t, json.Unmarshal(body, &s))
	return s.Stock
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestProducts_CRUD(t *testing.T) {
	app := newTestApp(t, "")

	p := createProduct(t, app, "Cimento", "32.5")
	assert.Equal(t, int64(1), p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	resp, body := do(t, app, http.MethodGet, "/products/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	resp, body = do(t, app, http.MethodPut, "/products/1", `{"name":"","description":"saco 50kg"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Cimento", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "saco 50kg", *updated.Description)

	resp, _ = do(t, app, http.MethodDelete, "/products/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestProducts_Validacion(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := do(t, app, http.MethodPost, "/products/", `{"name":"X","price":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "price")

	resp, _ = do(t, app, http.MethodPost, "/products/", `{"price":10}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/products/", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStockMovements_EjemploCompleto(t *testing.T) {
	app := newTestApp(t, "")
	a := createProduct(t, app, "A", "10")
	assert.Equal(t, int64(0), stockOf(t, app, a.ID))

	resp, body := do(t, app, http.MethodPost, "/stock-movements/", map[string]any{
		"type": "entrada", "movement_date": "2025-02-04",
		"items": []map[string]any{{"product_id": a.ID, "quantity": 100}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var in dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &in))
	assert.Equal(t, "entrada", in.Type)
	require.Len(t, in.Items, 1)
	assert.Equal(t, int64(100), stockOf(t, app, a.ID))

	resp, body = do(t, app, http.MethodPost, "/stock-movements/", map[string]any{
		"type": "saída", "movement_date": "2025-02-05T10:00:00Z",
		"items": []map[string]any{{"product_id": a.ID, "quantity": 150}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var rejected dto.StockErrorResponse
	require.NoError(t, json.Unmarshal(body, &rejected))
	assert.Equal(t, "stock insuficiente", rejected.Error)
	assert.Equal(t, []string{"producto 1: stock insuficiente (disponible: 100, solicitado: 150)"}, rejected.Details)
	assert.Equal(t, int64(100), stockOf(t, app, a.ID))

	resp, body = do(t, app, http.MethodPost, "/stock-movements/", map[string]any{
		"type": "saída", "movement_date": "2025-02-06T10:00:00",
		"items": []map[string]any{{"product_id": a.ID, "quantity": 60}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, int64(40), stockOf(t, app, a.ID))

	resp, body = do(t, app, http.MethodGet, "/stock-movements/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)

	resp, _ = do(t, app, http.MethodDelete, "/products/"+itoa(a.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "producto referenciado")

	resp, _ = do(t, app, http.MethodDelete, "/stock-movements/"+itoa(out.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(100), stockOf(t, app, a.ID))

	resp, _ = do(t, app, http.MethodGet, "/stock-movements/"+itoa(out.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockMovements_Validacion(t *testing.T) {
	app := newTestApp(t, "")
	a := createProduct(t, app, "A", "10")

	cases := map[string]string{
		"tipo desconocido": `{"type":"ajuste","movement_date":"2025-02-04","items":[{"product_id":1,"quantity":1}]}`,
		"sin ítems":        `{"type":"entrada","movement_date":"2025-02-04","items":[]}`,
		"cantidad cero":    `{"type":"entrada","movement_date":"2025-02-04","items":[{"product_id":1,"quantity":0}]}`,
		"sin fecha":        `{"type":"entrada","items":[{"product_id":1,"quantity":1}]}`,
		"fecha inválida":   `{"type":"entrada","movement_date":"mañana","items":[{"product_id":1,"quantity":1}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, _ := do(t, app, http.MethodPost, "/stock-movements/", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Equal(t, int64(0), stockOf(t, app, a.ID))
}

func TestStockMovements_UpdateSoloCabecera(t *testing.T) {
	app := newTestApp(t, "")
	a := createProduct(t, app, "A", "10")
	resp, body := do(t, app, http.MethodPost, "/stock-movements/", map[string]any{
		"type": "entrada", "movement_date": "2025-02-04",
		"items": []map[string]any{{"product_id": a.ID, "quantity": 5}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = do(t, app, http.MethodPut, "/stock-movements/1", `{"type":"saida","movement_date":"2025-03-01"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "saída", out.Type)
	assert.Len(t, out.Items, 1)
}

func TestGeodata_RoundTripYKML(t *testing.T) {
	app := newTestApp(t, "")
	geometry := `{"type":"Polygon","coordinates":[[[-47.9,-15.8],[-47.8,-15.8],[-47.8,-15.7],[-47.9,-15.8]]]}`

	resp, body := do(t, app, http.MethodPost, "/geodata/", `{"name":"Zona 1","description":"DF","geometry":`+geometry+`}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created dto.PolygonResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Polygon", created.Geometry.Type)
	assert.Contains(t, string(created.Geometry.Coordinates), "-47.9")

	resp, body = do(t, app, http.MethodGet, "/geodata/?skip=0&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.PolygonResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	resp, body = do(t, app, http.MethodGet, "/geodata/"+itoa(created.ID)+"/kml", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.google-earth.kml+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<Polygon>")

	resp, _ = do(t, app, http.MethodPost, "/geodata/", `{"name":"mala","geometry":{"type":"Circle","coordinates":[0,0]}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/geodata/?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReports_StockPDF(t *testing.T) {
	app := newTestApp(t, "")
	createProduct(t, app, "A", "10")

	resp, body := do(t, app, http.MethodGet, "/reports/stock.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestHealthYMetrics(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := do(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"estoque-api","store":"memory"}`, string(body))

	resp, body = do(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "estoque_test_http_requests_total")
}

func TestEscriturasProtegidasConJWT(t *testing.T) {
	app := newTestApp(t, testJWTSecret)

	resp, _ := do(t, app, http.MethodPost, "/products/", `{"name":"A","price":1}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/products/", `{"name":"A","price":1}`, "Authorization", tokenForRole(t, "viewer"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := do(t, app, http.MethodPost, "/products/", `{"name":"A","price":1}`, "Authorization", tokenForRole(t, "operator"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = do(t, app, http.MethodGet, "/products/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "las lecturas son públicas")
}

func TestStockMovements_CantidadFueraDeRango(t *testing.T) {
	app := newTestApp(t, "")
	a := createProduct(t, app, "A", "10")

	for i := 0; i < 2; i++ {
		resp, body := do(t, app, http.MethodPost, "/stock-movements/",
			`{"type":"entrada","movement_date":"2025-02-04","items":[{"product_id":1,"quantity":9223372036854775807}]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "items[0].quantity")
	}
	assert.Equal(t, int64(0), stockOf(t, app, a.ID))

	resp, body := do(t, app, http.MethodPost, "/stock-movements/",
		`{"type":"entrada","movement_date":"2025-02-04","items":[{"product_id":1,"quantity":1000000000}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = do(t, app, http.MethodPost, "/stock-movements/",
		`{"type":"saida","movement_date":"2025-02-05","items":[{"product_id":1,"quantity":5}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(999_999_995), stockOf(t, app, a.ID))
}

func TestProducts_PrecioConEscalaORangoInvalido(t *testing.T) {
	app := newTestApp(t, "")

	for _, price := range []string{"0.001", `"1e400"`, "1000000000000"} {
		resp, body := do(t, app, http.MethodPost, "/products/", `{"name":"X","price":`+price+`}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, price)
		assert.Contains(t, string(body), "price: como máximo 2 decimales", price)
	}

	p := createProduct(t, app, "Y", `"19.90"`)
	resp, _ := do(t, app, http.MethodPut, "/products/"+itoa(p.ID), `{"price":"19.999"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/products/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.True(t, list[0].Price.Equal(decimal.RequireFromString("19.90")), list[0].Price.String())
}

func TestGeodata_PaginacionFueraDeRangoNombraElParametro(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := do(t, app, http.MethodGet, "/geodata/?limit=5000", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "limit: valor fuera de rango (max=1000)")
}
