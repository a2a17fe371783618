package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/infrastructure/dtv"
)

// OutflowHandler maneja salidas de fruta y su documentación de transporte.
type OutflowHandler struct {
	uc    *movimientos.OutflowUseCase
	query *movimientos.QueryUseCase
	dtv   *dtv.Builder
}

// NewOutflowHandler construye el handler.
func NewOutflowHandler(uc *movimientos.OutflowUseCase, query *movimientos.QueryUseCase, dtvBuilder *dtv.Builder) *OutflowHandler {
	return &OutflowHandler{uc: uc, query: query, dtv: dtvBuilder}
}

// Create POST /api/outflows
func (h *OutflowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutflowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date, time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "date inválida, formato YYYY-MM-DD"})
	}
	input := movimientos.OutflowInput{
		ClientID: in.ClientID,
		UserID:   GetUserID(c),
		Number:   in.Number,
		Date:     date,
		Notes:    in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, movimientos.OutflowLineInput{
			ProductID: l.ProductID,
			Kg:        l.Kg,
			UnitPrice: l.UnitPrice,
		})
	}
	for _, mv := range in.Containers {
		input.Containers = append(input.Containers, movimientos.ContainerMoveInput{
			ContainerTypeID: mv.ContainerTypeID,
			FullDelta:       mv.FullDelta,
			EmptyDelta:      mv.EmptyDelta,
			DebtDelta:       mv.DebtDelta,
		})
	}
	outflow, err := h.uc.CreateOutflow(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOutflowResponse(outflow))
}

// Get GET /api/outflows/:id
func (h *OutflowHandler) Get(c *fiber.Ctx) error {
	outflow, err := h.query.GetOutflow(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOutflowResponse(outflow))
}

// List GET /api/outflows?client_id=&limit=20&offset=0
func (h *OutflowHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	outflows, err := h.query.ListOutflows(c.Context(), c.Query("client_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OutflowResponse, 0, len(outflows))
	for _, o := range outflows {
		out = append(out, toOutflowResponse(o))
	}
	return c.JSON(out)
}

// TransportDoc GET /api/outflows/:id/transport-doc
// Genera el XML del documento de tránsito vegetal de la salida.
func (h *OutflowHandler) TransportDoc(c *fiber.Ctx) error {
	outflow, client, products, containers, err := h.query.OutflowDocData(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.dtv.Build(outflow, client, products, containers)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="dtv-%s.xml"`, outflow.ID))
	return c.Send(data)
}

func toOutflowResponse(o *entity.SalesOutflow) dto.OutflowResponse {
	out := dto.OutflowResponse{
		ID:              o.ID,
		ClientID:        o.ClientID,
		Number:          o.Number,
		Date:            o.Date,
		DebtTotal:       o.DebtTotal,
		AmountCollected: o.AmountCollected,
		PaymentStatus:   o.PaymentStatus,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, dto.OutflowLineResponse{
			ProductID: l.ProductID,
			Kg:        l.Kg,
			UnitPrice: l.UnitPrice,
			Amount:    l.Amount,
		})
	}
	return out
}
