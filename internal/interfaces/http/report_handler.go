package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/reports"
)

// ReportHandler reportes de solo lectura (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockOverview devuelve el resumen del inventario activo.
func (h *ReportHandler) StockOverview(c *fiber.Ctx) error {
	out, err := h.uc.StockOverview()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
