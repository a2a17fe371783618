package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/maestros"
)

// ContainerHandler maneja tipos de envase, stock propio y deudas por parte.
type ContainerHandler struct {
	uc *maestros.ContainerUseCase
}

// NewContainerHandler construye el handler.
func NewContainerHandler(uc *maestros.ContainerUseCase) *ContainerHandler {
	return &ContainerHandler{uc: uc}
}

// CreateType POST /api/containers/types
func (h *ContainerHandler) CreateType(c *fiber.Ctx) error {
	var in dto.CreateContainerTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	ct, err := h.uc.CreateType(c.Context(), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ContainerTypeResponse{ID: ct.ID, Name: ct.Name})
}

// ListTypes GET /api/containers/types
func (h *ContainerHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.uc.ListTypes(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ContainerTypeResponse, 0, len(types))
	for _, ct := range types {
		out = append(out, dto.ContainerTypeResponse{ID: ct.ID, Name: ct.Name})
	}
	return c.JSON(out)
}

// ListStock GET /api/containers/stock
func (h *ContainerHandler) ListStock(c *fiber.Ctx) error {
	stocks, err := h.uc.ListStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ContainerStockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.ContainerStockResponse{
			ContainerTypeID: s.ContainerTypeID,
			EmptyUnits:      s.EmptyUnits,
			FullUnits:       s.FullUnits,
		})
	}
	return c.JSON(out)
}

// ListDebtByParty GET /api/parties/:id/container-debts
func (h *ContainerHandler) ListDebtByParty(c *fiber.Ctx) error {
	debts, err := h.uc.ListDebtByParty(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ContainerDebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, dto.ContainerDebtResponse{ContainerTypeID: d.ContainerTypeID, Units: d.Units})
	}
	return c.JSON(out)
}
