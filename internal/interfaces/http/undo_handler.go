package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/anulacion"
	"github.com/frutasur/empaque-api/internal/application/dto"
)

// UndoHandler maneja la anulación de documentos: reproduce el registro de
// efectos invertido, borra asientos y documento, y recalcula los saldos tocados.
type UndoHandler struct {
	uc *anulacion.UndoUseCase
}

// NewUndoHandler construye el handler.
func NewUndoHandler(uc *anulacion.UndoUseCase) *UndoHandler {
	return &UndoHandler{uc: uc}
}

// UndoIntake DELETE /api/intakes/:id
func (h *UndoHandler) UndoIntake(c *fiber.Ctx) error {
	res, err := h.uc.UndoIntake(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUndoResponse(res))
}

// UndoOutflow DELETE /api/outflows/:id
func (h *UndoHandler) UndoOutflow(c *fiber.Ctx) error {
	res, err := h.uc.UndoOutflow(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUndoResponse(res))
}

// UndoCollection DELETE /api/collections/:id
func (h *UndoHandler) UndoCollection(c *fiber.Ctx) error {
	res, err := h.uc.UndoCollection(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUndoResponse(res))
}

// UndoPayment DELETE /api/payments/:id
func (h *UndoHandler) UndoPayment(c *fiber.Ctx) error {
	res, err := h.uc.UndoPayment(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toUndoResponse(res))
}

func toUndoResponse(res *anulacion.UndoResult) dto.UndoResponse {
	out := dto.UndoResponse{DocType: res.DocType, DocID: res.DocID}
	for _, p := range res.Parties {
		out.Parties = append(out.Parties, dto.UndoPartyStatus{
			Type:     p.Type,
			ID:       p.ID,
			Balance:  p.Balance,
			Orphaned: p.Orphaned,
		})
	}
	return out
}
