package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/movimientos"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// IntakeHandler maneja remitos de entrada de fruta.
type IntakeHandler struct {
	uc    *movimientos.IntakeUseCase
	query *movimientos.QueryUseCase
}

// NewIntakeHandler construye el handler.
func NewIntakeHandler(uc *movimientos.IntakeUseCase, query *movimientos.QueryUseCase) *IntakeHandler {
	return &IntakeHandler{uc: uc, query: query}
}

// Create POST /api/intakes
func (h *IntakeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date, time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "date inválida, formato YYYY-MM-DD"})
	}
	input := movimientos.IntakeInput{
		SupplierID: in.SupplierID,
		UserID:     GetUserID(c),
		Number:     in.Number,
		Date:       date,
		Notes:      in.Notes,
	}
	for _, w := range in.WeighIns {
		input.WeighIns = append(input.WeighIns, movimientos.WeighInInput{
			ProductID:  w.ProductID,
			Kg:         w.Kg,
			PricePerKg: w.PricePerKg,
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
	intake, err := h.uc.CreateIntake(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toIntakeResponse(intake))
}

// Get GET /api/intakes/:id
func (h *IntakeHandler) Get(c *fiber.Ctx) error {
	intake, err := h.query.GetIntake(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toIntakeResponse(intake))
}

// List GET /api/intakes?supplier_id=&limit=20&offset=0
func (h *IntakeHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	intakes, err := h.query.ListIntakes(c.Context(), c.Query("supplier_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.IntakeResponse, 0, len(intakes))
	for _, in := range intakes {
		out = append(out, toIntakeResponse(in))
	}
	return c.JSON(out)
}

func toIntakeResponse(in *entity.GoodsIntake) dto.IntakeResponse {
	out := dto.IntakeResponse{
		ID:         in.ID,
		SupplierID: in.SupplierID,
		Number:     in.Number,
		Date:       in.Date,
		Total:      in.Total,
		Notes:      in.Notes,
		CreatedAt:  in.CreatedAt,
	}
	for _, w := range in.WeighIns {
		out.WeighIns = append(out.WeighIns, dto.WeighInResponse{
			ProductID:  w.ProductID,
			Kg:         w.Kg,
			PricePerKg: w.PricePerKg,
			Amount:     w.Amount,
		})
	}
	return out
}
