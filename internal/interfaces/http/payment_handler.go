package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/tesoreria"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// PaymentHandler maneja pagos a proveedores.
type PaymentHandler struct {
	uc    *tesoreria.PaymentUseCase
	query *tesoreria.QueryUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *tesoreria.PaymentUseCase, query *tesoreria.QueryUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc, query: query}
}

// Create POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
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
	payment, err := h.uc.CreatePayment(c.Context(), tesoreria.PaymentInput{
		SupplierID:  in.SupplierID,
		UserID:      GetUserID(c),
		Method:      in.Method,
		Date:        date,
		Notes:       in.Notes,
		Retention:   in.Retention,
		Instruments: instruments,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
}

// Get GET /api/payments/:id
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	payment, err := h.query.GetPayment(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPaymentResponse(payment))
}

// List GET /api/payments?supplier_id=&limit=20&offset=0
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	payments, err := h.query.ListPayments(c.Context(), c.Query("supplier_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return c.JSON(out)
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		Method:      p.Method,
		Total:       p.Total,
		Retention:   p.Retention,
		Date:        p.Date,
		Notes:       p.Notes,
		Instruments: toInstrumentResponses(p.Instruments),
		CreatedAt:   p.CreatedAt,
	}
}
