package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockReportLine fila del reporte: producto, precio y stock derivado.
type StockReportLine struct {
	ProductID   int64
	ProductName string
	Price       decimal.Decimal
	Stock       int64
}

// StockReport datos completos que se pasan al generador.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Lines       []StockReportLine
}

// StockReportGenerator genera el documento binario (PDF) del reporte de stock.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, r StockReport) ([]byte, error)
}
