package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/parties"
)

// PartyHandler maneja proveedores y clientes (protegido).
type PartyHandler struct {
	uc *parties.UseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(uc *parties.UseCase) *PartyHandler {
	return &PartyHandler{uc: uc}
}

func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSupplier(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PartyHandler) GetSupplier(c *fiber.Ctx) error {
	out, err := h.uc.GetSupplier(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListSuppliers(page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateCustomer(in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PartyHandler) GetCustomer(c *fiber.Ctx) error {
	out, err := h.uc.GetCustomer(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

func (h *PartyHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListCustomers(page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
