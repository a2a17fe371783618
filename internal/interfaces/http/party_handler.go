package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/cuenta"
	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/maestros"
	"github.com/frutasur/empaque-api/internal/application/reports"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// PartyHandler maneja clientes/proveedores, su cuenta corriente y extractos.
type PartyHandler struct {
	uc          *maestros.PartyUseCase
	reconciler  *cuenta.Reconciler
	statementUC *reports.StatementUseCase
	xlsx        reports.StatementExporter
	pdf         reports.StatementExporter
	healWorkers int
}

// NewPartyHandler construye el handler.
func NewPartyHandler(
	uc *maestros.PartyUseCase,
	reconciler *cuenta.Reconciler,
	statementUC *reports.StatementUseCase,
	xlsx, pdf reports.StatementExporter,
	healWorkers int,
) *PartyHandler {
	return &PartyHandler{
		uc:          uc,
		reconciler:  reconciler,
		statementUC: statementUC,
		xlsx:        xlsx,
		pdf:         pdf,
		healWorkers: healWorkers,
	}
}

// Create POST /api/parties
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	party, err := h.uc.Create(c.Context(), maestros.PartyInput{
		Type:  in.Type,
		Name:  in.Name,
		TaxID: in.TaxID,
		Phone: in.Phone,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPartyResponse(party))
}

// Get GET /api/parties/:id
func (h *PartyHandler) Get(c *fiber.Ctx) error {
	party, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPartyResponse(party))
}

// List GET /api/parties?type=client&limit=20&offset=0
func (h *PartyHandler) List(c *fiber.Ctx) error {
	partyType := c.Query("type")
	if partyType != entity.PartyTypeClient && partyType != entity.PartyTypeSupplier {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "type debe ser client o supplier"})
	}
	limit, offset := pagination(c)
	parties, err := h.uc.List(c.Context(), partyType, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PartyResponse, 0, len(parties))
	for _, p := range parties {
		out = append(out, toPartyResponse(p))
	}
	return c.JSON(out)
}

// Update PUT /api/parties/:id
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	party, err := h.uc.Update(c.Context(), c.Params("id"), maestros.PartyInput{
		Name:  in.Name,
		TaxID: in.TaxID,
		Phone: in.Phone,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPartyResponse(party))
}

// Delete DELETE /api/parties/:id
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta corriente eliminada"})
}

// Reconcile POST /api/parties/:id/reconcile
// Recalcula el saldo de la parte desde el mayor y corrige la deriva.
func (h *PartyHandler) Reconcile(c *fiber.Ctx) error {
	party, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.reconciler.RecomputeBalance(c.Context(), party.Type, party.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		Balance:        res.Balance,
		Drifted:        res.Drifted,
		SnapshotsFixed: res.SnapshotsFixed,
	})
}

// HealAll POST /api/parties/heal
// Sanea el saldo de todas las cuentas corrientes con concurrencia acotada.
func (h *PartyHandler) HealAll(c *fiber.Ctx) error {
	report, err := h.reconciler.HealAll(c.Context(), h.healWorkers)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.HealReportResponse{
		Parties:   report.Parties,
		Corrected: report.Corrected,
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, dto.HealFailureDTO{PartyID: f.PartyID, Error: f.Err.Error()})
	}
	return c.JSON(out)
}

// Statement GET /api/parties/:id/statement?from=YYYY-MM-DD&to=YYYY-MM-DD&format=json|xlsx|pdf
func (h *PartyHandler) Statement(c *fiber.Ctx) error {
	party, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	from, err := parseDate(c.Query("from"), now.AddDate(0, -1, 0))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "from inválida, formato YYYY-MM-DD"})
	}
	to, err := parseDate(c.Query("to"), now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "to inválida, formato YYYY-MM-DD"})
	}
	st, err := h.statementUC.Build(c.Context(), party.Type, party.ID, from, to)
	if err != nil {
		return respondError(c, err)
	}

	switch c.Query("format", "json") {
	case "json":
		return c.JSON(toStatementResponse(st))
	case "xlsx":
		data, err := h.xlsx.Export(st)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="extracto-%s.xlsx"`, party.ID))
		return c.Send(data)
	case "pdf":
		data, err := h.pdf.Export(st)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="extracto-%s.pdf"`, party.ID))
		return c.Send(data)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "format debe ser json, xlsx o pdf"})
	}
}

func toPartyResponse(p *entity.Party) dto.PartyResponse {
	return dto.PartyResponse{
		ID:             p.ID,
		Type:           p.Type,
		Name:           p.Name,
		TaxID:          p.TaxID,
		Phone:          p.Phone,
		CurrentBalance: p.CurrentBalance,
		CreatedAt:      p.CreatedAt,
	}
}

func toStatementResponse(st *reports.Statement) dto.StatementResponse {
	out := dto.StatementResponse{
		Party:          toPartyResponse(st.Party),
		From:           st.From,
		To:             st.To,
		OpeningBalance: st.OpeningBalance,
		ClosingBalance: st.ClosingBalance,
	}
	for _, row := range st.Rows {
		e := row.Entry
		out.Entries = append(out.Entries, dto.LedgerEntryResponse{
			ID:           e.ID,
			Direction:    e.Direction,
			Amount:       e.Amount,
			DocType:      e.DocType,
			DocID:        e.DocID,
			BalanceAfter: row.Balance,
			Description:  e.Description,
			Date:         e.Date,
		})
	}
	return out
}
