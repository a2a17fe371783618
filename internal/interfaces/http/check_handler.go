package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// CheckHandler maneja la cartera de cheques de terceros.
type CheckHandler struct {
	uc *tesoreria.CheckUseCase
}

// NewCheckHandler construye el handler.
func NewCheckHandler(uc *tesoreria.CheckUseCase) *CheckHandler {
	return &CheckHandler{uc: uc}
}

// Get GET /api/checks/:id
func (h *CheckHandler) Get(c *fiber.Ctx) error {
	check, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check))
}

// List GET /api/checks?status=in_portfolio&limit=20&offset=0
func (h *CheckHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	checks, err := h.uc.ListByStatus(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CheckResponse, 0, len(checks))
	for _, ch := range checks {
		out = append(out, toCheckResponse(ch))
	}
	return c.JSON(out)
}

// Deposit POST /api/checks/:id/deposit
// Deposita un cheque en cartera en una cuenta bancaria y acredita el saldo.
func (h *CheckHandler) Deposit(c *fiber.Ctx) error {
	var in dto.DepositCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	check, err := h.uc.Deposit(c.Context(), c.Params("id"), in.BankAccountID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check))
}

// UpdateStatus PUT /api/checks/:id/status
func (h *CheckHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateCheckStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	check, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCheckResponse(check))
}

func toCheckResponse(ch *entity.Check) dto.CheckResponse {
	return dto.CheckResponse{
		ID:          ch.ID,
		Number:      ch.Number,
		BankName:    ch.BankName,
		Amount:      ch.Amount,
		IssueDate:   ch.IssueDate,
		DueDate:     ch.DueDate,
		Status:      ch.Status,
		PartyID:     ch.PartyID,
		DepositBank: ch.DepositBank,
	}
}
