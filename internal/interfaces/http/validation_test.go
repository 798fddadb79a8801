package http_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
)

func TestValidator_PaginacionUsaNombreDeQueryYRangoNumerico(t *testing.T) {
	val := apphttp.NewValidator()

	details := val.Struct(&dto.PageRequest{Skip: -1, Limit: 5000})
	assert.ElementsMatch(t, []string{
		"skip: valor fuera de rango (min=0)",
		"limit: valor fuera de rango (max=1000)",
	}, details)
}

func TestValidator_LongitudDeTexto(t *testing.T) {
	val := apphttp.NewValidator()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	details := val.Struct(&dto.CreateProductRequest{Name: string(long), Price: decimal.NewFromInt(1)})
	assert.Equal(t, []string{"name: longitud fuera de rango (max=200)"}, details)
}

func TestValidator_FormatoDePrecio(t *testing.T) {
	val := apphttp.NewValidator()

	for _, price := range []string{"0.001", "1e400", "1000000000000"} {
		details := val.Struct(&dto.CreateProductRequest{Name: "X", Price: decimal.RequireFromString(price)})
		assert.Equal(t, []string{"price: como máximo 2 decimales y 12 dígitos enteros"}, details, price)
	}
	assert.Empty(t, val.Struct(&dto.CreateProductRequest{Name: "X", Price: decimal.RequireFromString("10.50")}))

	bad := decimal.RequireFromString("3.141")
	assert.NotEmpty(t, val.Struct(&dto.UpdateProductRequest{Price: &bad}))
	assert.Empty(t, val.Struct(&dto.UpdateProductRequest{}))
}

func TestValidator_CantidadMaxima(t *testing.T) {
	val := apphttp.NewValidator()
	req := func(qty int64) *dto.CreateStockMovementRequest {
		return &dto.CreateStockMovementRequest{
			Type:         "entrada",
			MovementDate: &dto.FlexTime{},
			Items:        []dto.StockMovementItemRequest{{ProductID: 1, Quantity: qty}},
		}
	}

	assert.Empty(t, val.Struct(req(1_000_000_000)))
	assert.Equal(t, []string{"items[0].quantity: debe ser menor o igual que 1000000000"}, val.Struct(req(1_000_000_001)))
}
