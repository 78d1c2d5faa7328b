// Package excel exporta reportes de inventario en formato xlsx.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lockstock/lockstock-api/internal/application/dto"
)

// StockReportExporter genera el archivo xlsx del reporte de stock bajo.
type StockReportExporter struct{}

// NewStockReportExporter construye el exportador.
func NewStockReportExporter() *StockReportExporter { return &StockReportExporter{} }

// LowStockXLSX genera un xlsx con una fila por material en alerta.
func (e *StockReportExporter) LowStockXLSX(items []dto.LowStockItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"sku",
		"name",
		"min_stock",
		"quantity",
		"deficit",
		"status",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	row := 2
	for _, it := range items {
		excelRow := []interface{}{
			it.SKU,
			it.Name,
			it.MinStock.String(),
			it.Quantity.String(),
			it.Deficit.String(),
			it.Status,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", row, err)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
