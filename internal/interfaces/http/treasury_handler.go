package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// TreasuryHandler maneja cajas/bancos y sus asientos manuales.
type TreasuryHandler struct {
	uc *tesoreria.TreasuryUseCase
}

// NewTreasuryHandler construye el handler.
func NewTreasuryHandler(uc *tesoreria.TreasuryUseCase) *TreasuryHandler {
	return &TreasuryHandler{uc: uc}
}

// CreateAccount POST /api/treasury/accounts
func (h *TreasuryHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	account, err := h.uc.CreateAccount(c.Context(), tesoreria.AccountInput{
		Kind:           in.Kind,
		Name:           in.Name,
		InitialBalance: in.InitialBalance,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAccountResponse(account))
}

// GetAccount GET /api/treasury/accounts/:id
func (h *TreasuryHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.uc.GetAccount(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAccountResponse(account))
}

// ListAccounts GET /api/treasury/accounts
func (h *TreasuryHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.uc.ListAccounts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return c.JSON(out)
}

// DeleteAccount DELETE /api/treasury/accounts/:id
func (h *TreasuryHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.uc.DeleteAccount(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}

// CreateEntry POST /api/treasury/accounts/:id/entries
func (h *TreasuryHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateManualEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date, time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "date inválida, formato YYYY-MM-DD"})
	}
	entry, err := h.uc.CreateManualEntry(c.Context(), tesoreria.ManualEntryInput{
		AccountID: c.Params("id"),
		Kind:      in.Kind,
		Amount:    in.Amount,
		Concept:   in.Concept,
		Date:      date,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// ListEntries GET /api/treasury/accounts/:id/entries?limit=20&offset=0
func (h *TreasuryHandler) ListEntries(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	entries, err := h.uc.ListEntries(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TreasuryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return c.JSON(out)
}

// DeleteEntry DELETE /api/treasury/entries/:id
// Solo asientos manuales: los enlazados a documentos se revierten anulando el documento.
func (h *TreasuryHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.uc.DeleteManualEntry(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "asiento eliminado y saldo revertido"})
}

func toAccountResponse(a *entity.TreasuryAccount) dto.AccountResponse {
	return dto.AccountResponse{ID: a.ID, Kind: a.Kind, Name: a.Name, Balance: a.Balance}
}

func toEntryResponse(e *entity.TreasuryEntry) dto.TreasuryEntryResponse {
	return dto.TreasuryEntryResponse{
		ID:        e.ID,
		AccountID: e.AccountID,
		Kind:      e.Kind,
		Amount:    e.Amount,
		Concept:   e.Concept,
		DocType:   e.DocType,
		DocID:     e.DocID,
		Date:      e.Date,
	}
}
