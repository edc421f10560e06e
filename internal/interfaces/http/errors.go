package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// handleError traduce errores de dominio a respuestas HTTP. Los errores de
// línea (LineError) se desenvuelven para conservar el detalle de producto y
// línea en el cuerpo.
func handleError(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	if errors.As(err, &shortage) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente para " + shortage.ProductName,
			Details: &dto.ErrorDetails{
				ProductID: shortage.ProductID,
				Line:      shortage.Line,
				Available: shortage.Available,
				Requested: shortage.Requested,
			},
		})
	}

	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		resp := dto.ErrorResponse{
			Message: lineErr.Error(),
			Details: &dto.ErrorDetails{ProductID: lineErr.ProductID, Line: lineErr.Line},
		}
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			resp.Code = "PRODUCT_NOT_FOUND"
			return c.Status(fiber.StatusNotFound).JSON(resp)
		case errors.Is(err, domain.ErrInvalidInput):
			resp.Code = "VALIDATION"
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		default:
			resp.Code = "INTERNAL"
			return c.Status(fiber.StatusInternalServerError).JSON(resp)
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedDocument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_XML", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSupplierNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SUPPLIER_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
