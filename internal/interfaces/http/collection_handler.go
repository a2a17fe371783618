package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// CollectionHandler maneja cobranzas a clientes.
type CollectionHandler struct {
	uc    *tesoreria.CollectionUseCase
	query *tesoreria.QueryUseCase
}

// NewCollectionHandler construye el handler.
func NewCollectionHandler(uc *tesoreria.CollectionUseCase, query *tesoreria.QueryUseCase) *CollectionHandler {
	return &CollectionHandler{uc: uc, query: query}
}

// Create POST /api/collections
func (h *CollectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date, time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "date inválida, formato YYYY-MM-DD"})
	}
	instruments, err := toInstrumentInputs(in.Instruments)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	collection, err := h.uc.CreateCollection(c.Context(), tesoreria.CollectionInput{
		ClientID:    in.ClientID,
		OutflowID:   in.OutflowID,
		UserID:      GetUserID(c),
		Method:      in.Method,
		Date:        date,
		Notes:       in.Notes,
		Instruments: instruments,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCollectionResponse(collection))
}

// Get GET /api/collections/:id
func (h *CollectionHandler) Get(c *fiber.Ctx) error {
	collection, err := h.query.GetCollection(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCollectionResponse(collection))
}

// List GET /api/collections?client_id=&limit=20&offset=0
func (h *CollectionHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	collections, err := h.query.ListCollections(c.Context(), c.Query("client_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CollectionResponse, 0, len(collections))
	for _, col := range collections {
		out = append(out, toCollectionResponse(col))
	}
	return c.JSON(out)
}

func toInstrumentInputs(in []dto.InstrumentRequest) ([]tesoreria.InstrumentInput, error) {
	var out []tesoreria.InstrumentInput
	for _, ins := range in {
		input := tesoreria.InstrumentInput{
			Kind:              ins.Kind,
			TreasuryAccountID: ins.TreasuryAccountID,
			Amount:            ins.Amount,
			CheckID:           ins.CheckID,
		}
		if ins.Check != nil {
			issue, err := parseDate(ins.Check.IssueDate, time.Now())
			if err != nil {
				return nil, err
			}
			due, err := parseDate(ins.Check.DueDate, issue)
			if err != nil {
				return nil, err
			}
			input.Check = &tesoreria.CheckInput{
				Number:    ins.Check.Number,
				BankName:  ins.Check.BankName,
				IssueDate: issue,
				DueDate:   due,
			}
		}
		out = append(out, input)
	}
	return out, nil
}

func toInstrumentResponses(instruments []entity.Instrument) []dto.InstrumentResponse {
	out := make([]dto.InstrumentResponse, 0, len(instruments))
	for _, i := range instruments {
		out = append(out, dto.InstrumentResponse{
			Kind:              i.Kind,
			TreasuryAccountID: i.TreasuryAccountID,
			CheckID:           i.CheckID,
			Amount:            i.Amount,
		})
	}
	return out
}

func toCollectionResponse(col *entity.Collection) dto.CollectionResponse {
	return dto.CollectionResponse{
		ID:          col.ID,
		ClientID:    col.ClientID,
		OutflowID:   col.OutflowID,
		Method:      col.Method,
		Total:       col.Total,
		Date:        col.Date,
		Notes:       col.Notes,
		Instruments: toInstrumentResponses(col.Instruments),
		CreatedAt:   col.CreatedAt,
	}
}
