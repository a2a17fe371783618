package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cobro de una salida.
const (
	PaymentStatusPending   = "pending"   // sin cobros aplicados
	PaymentStatusPartial   = "partial"   // cobrado parcial (0 < cobrado < deuda)
	PaymentStatusCollected = "collected" // cobrado total (cobrado >= deuda)
)

// SalesOutflow es una salida de fruta a un cliente (venta en cuenta corriente).
// Debita al cliente, descuenta stock de fruta y entrega envases llenos.
// AmountCollected y PaymentStatus se actualizan al aplicar cobranzas.
type SalesOutflow struct {
	ID              string
	ClientID        string
	Number          string
	Date            time.Time
	Lines           []OutflowLine
	Containers      []ContainerMove
	DebtTotal       decimal.Decimal
	AmountCollected decimal.Decimal
	PaymentStatus   string
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string
}

// OutflowLine una línea de venta: kilos de un producto a un precio unitario.
type OutflowLine struct {
	ID        string
	OutflowID string
	ProductID string
	Kg        decimal.Decimal
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// StatusFor devuelve el estado de cobro según el monto cobrado acumulado.
// Umbrales: cobrado >= deuda -> collected; 0 < cobrado < deuda -> partial; 0 -> pending.
func StatusFor(debtTotal, collected decimal.Decimal) string {
	if collected.LessThanOrEqual(decimal.Zero) {
		return PaymentStatusPending
	}
	if collected.GreaterThanOrEqual(debtTotal) {
		return PaymentStatusCollected
	}
	return PaymentStatusPartial
}
