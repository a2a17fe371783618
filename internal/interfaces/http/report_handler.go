package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frutasur/empaque-api/internal/application/dto"
	"github.com/frutasur/empaque-api/internal/application/reports"
)

// ReportHandler maneja los reportes de stock.
type ReportHandler struct {
	stockUC *reports.StockUseCase
	xlsx    reports.StockExporter
}

// NewReportHandler construye el handler.
func NewReportHandler(stockUC *reports.StockUseCase, xlsx reports.StockExporter) *ReportHandler {
	return &ReportHandler{stockUC: stockUC, xlsx: xlsx}
}

// Stock GET /api/reports/stock?format=json|xlsx
// Foto del stock de fruta y envases.
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	rep, err := h.stockUC.Build(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	switch c.Query("format", "json") {
	case "json":
		return c.JSON(toStockResponse(rep))
	case "xlsx":
		data, err := h.xlsx.Export(rep)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-%s.xlsx"`, time.Now().Format("2006-01-02")))
		return c.Send(data)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "format debe ser json o xlsx"})
	}
}

type stockResponse struct {
	Products   []dto.ProductResponse        `json:"products"`
	Containers []dto.ContainerStockResponse `json:"containers"`
	Generated  time.Time                    `json:"generated_at"`
}

func toStockResponse(rep *reports.StockReport) stockResponse {
	out := stockResponse{Generated: rep.GeneratedAt}
	for _, p := range rep.Products {
		out.Products = append(out.Products, toProductResponse(p))
	}
	for _, line := range rep.Containers {
		item := dto.ContainerStockResponse{ContainerTypeID: line.Type.ID}
		if line.Stock != nil {
			item.EmptyUnits = line.Stock.EmptyUnits
			item.FullUnits = line.Stock.FullUnits
		}
		out.Containers = append(out.Containers, item)
	}
	return out
}
