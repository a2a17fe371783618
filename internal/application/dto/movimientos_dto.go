package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name    string `json:"name"`
	Variety string `json:"variety,omitempty"`
}

// ProductResponse producto con su stock.
type ProductResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Variety string          `json:"variety,omitempty"`
	StockKg decimal.Decimal `json:"stock_kg"`
}

// CreateContainerTypeRequest body para POST /api/containers/types.
type CreateContainerTypeRequest struct {
	Name string `json:"name"`
}

// ContainerTypeResponse tipo de envase.
type ContainerTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContainerStockResponse stock propio de un tipo de envase.
type ContainerStockResponse struct {
	ContainerTypeID string `json:"container_type_id"`
	EmptyUnits      int    `json:"empty_units"`
	FullUnits       int    `json:"full_units"`
}

// ContainerDebtResponse deuda de envases de una parte.
type ContainerDebtResponse struct {
	ContainerTypeID string `json:"container_type_id"`
	Units           int    `json:"units"`
}

// ContainerMoveRequest deltas de envases declarados en un documento.
type ContainerMoveRequest struct {
	ContainerTypeID string `json:"container_type_id"`
	FullDelta       int    `json:"full_delta,omitempty"`
	EmptyDelta      int    `json:"empty_delta,omitempty"`
	DebtDelta       int    `json:"debt_delta,omitempty"`
}

// WeighInRequest una pesada del remito de entrada.
type WeighInRequest struct {
	ProductID  string          `json:"product_id"`
	Kg         decimal.Decimal `json:"kg"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// CreateIntakeRequest body para POST /api/intakes.
type CreateIntakeRequest struct {
	SupplierID string                 `json:"supplier_id"`
	Number     string                 `json:"number,omitempty"`
	Date       string                 `json:"date,omitempty"` // YYYY-MM-DD
	Notes      string                 `json:"notes,omitempty"`
	WeighIns   []WeighInRequest       `json:"weigh_ins"`
	Containers []ContainerMoveRequest `json:"containers,omitempty"`
}

// WeighInResponse pesada en respuestas.
type WeighInResponse struct {
	ProductID  string          `json:"product_id"`
	Kg         decimal.Decimal `json:"kg"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	Amount     decimal.Decimal `json:"amount"`
}

// IntakeResponse remito de entrada.
type IntakeResponse struct {
	ID         string            `json:"id"`
	SupplierID string            `json:"supplier_id"`
	Number     string            `json:"number,omitempty"`
	Date       time.Time         `json:"date"`
	Total      decimal.Decimal   `json:"total"`
	Notes      string            `json:"notes,omitempty"`
	WeighIns   []WeighInResponse `json:"weigh_ins"`
	CreatedAt  time.Time         `json:"created_at"`
}

// OutflowLineRequest una línea de venta.
type OutflowLineRequest struct {
	ProductID string          `json:"product_id"`
	Kg        decimal.Decimal `json:"kg"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOutflowRequest body para POST /api/outflows.
type CreateOutflowRequest struct {
	ClientID   string                 `json:"client_id"`
	Number     string                 `json:"number,omitempty"`
	Date       string                 `json:"date,omitempty"` // YYYY-MM-DD
	Notes      string                 `json:"notes,omitempty"`
	Lines      []OutflowLineRequest   `json:"lines"`
	Containers []ContainerMoveRequest `json:"containers,omitempty"`
}

// OutflowLineResponse línea de venta en respuestas.
type OutflowLineResponse struct {
	ProductID string          `json:"product_id"`
	Kg        decimal.Decimal `json:"kg"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// OutflowResponse salida de fruta con su estado de cobro.
type OutflowResponse struct {
	ID              string                `json:"id"`
	ClientID        string                `json:"client_id"`
	Number          string                `json:"number,omitempty"`
	Date            time.Time             `json:"date"`
	DebtTotal       decimal.Decimal       `json:"debt_total"`
	AmountCollected decimal.Decimal       `json:"amount_collected"`
	PaymentStatus   string                `json:"payment_status"`
	Notes           string                `json:"notes,omitempty"`
	Lines           []OutflowLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"created_at"`
}
