package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lockstock/lockstock-api/internal/application/stock"
	"github.com/lockstock/lockstock-api/internal/infrastructure/excel"
)

// ReportHandler maneja los reportes de salud de inventario y alertas.
type ReportHandler struct {
	health   *stock.HealthUseCase
	exporter *excel.StockReportExporter
}

// NewReportHandler construye el handler.
func NewReportHandler(health *stock.HealthUseCase, exporter *excel.StockReportExporter) *ReportHandler {
	return &ReportHandler{health: health, exporter: exporter}
}

// LowStock godoc
// @Summary      Materiales en o por debajo de su mínimo, con déficit
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/alerts/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.health.LowStock(c.Context(), GetAuthz(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// StockHealth godoc
// @Summary      Resumen agregado de salud de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockHealthSummary
// @Router       /api/reports/stock-health [get]
func (h *ReportHandler) StockHealth(c *fiber.Ctx) error {
	summary, err := h.health.Health(c.Context(), GetAuthz(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// LowStockXLSX godoc
// @Summary      Exportar el reporte de stock bajo como xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  byte
// @Router       /api/reports/stock-health/export [get]
func (h *ReportHandler) LowStockXLSX(c *fiber.Ctx) error {
	items, err := h.health.LowStock(c.Context(), GetAuthz(c))
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.exporter.LowStockXLSX(items)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="low-stock.xlsx"`)
	return c.Send(data)
}
