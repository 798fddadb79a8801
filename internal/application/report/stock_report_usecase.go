package report

import (
	"context"
	"fmt"
	"time"

	ledger "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// StockReportUseCase arma el reporte de stock de todos los productos.
type StockReportUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	generator   StockReportGenerator
	title       string
	now         func() time.Time
}

// NewStockReportUseCase construye el caso de uso. title aparece en la cabecera del PDF.
func NewStockReportUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	generator StockReportGenerator,
	title string,
) *StockReportUseCase {
	return &StockReportUseCase{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		generator:   generator,
		title:       title,
		now:         time.Now,
	}
}

// Build calcula el stock de cada producto en orden de id.
func (uc *StockReportUseCase) Build(ctx context.Context) (StockReport, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return StockReport{}, fmt.Errorf("reporte: listar productos: %w", err)
	}
	r := StockReport{
		Title:       uc.title,
		GeneratedAt: uc.now().UTC(),
		Lines:       make([]StockReportLine, 0, len(products)),
	}
	for _, p := range products {
		entries, err := uc.stockRepo.LedgerByProduct(ctx, p.ID)
		if err != nil {
			return StockReport{}, fmt.Errorf("reporte: stock del producto %d: %w", p.ID, err)
		}
		stock, err := ledger.CurrentStock(entries)
		if err != nil {
			return StockReport{}, fmt.Errorf("reporte: stock del producto %d: %w", p.ID, err)
		}
		r.Lines = append(r.Lines, StockReportLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.Price,
			Stock:       stock,
		})
	}
	return r, nil
}

// PDF genera el documento y devuelve bytes y nombre de archivo sugerido.
func (uc *StockReportUseCase) PDF(ctx context.Context) ([]byte, string, error) {
	r, err := uc.Build(ctx)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.generator.GenerateStockReport(ctx, r)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("estoque-%s.pdf", r.GeneratedAt.Format("20060102")), nil
}
