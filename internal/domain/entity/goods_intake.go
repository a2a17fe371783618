package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsIntake es un remito de entrada: fruta recibida de un proveedor.
// Acredita al proveedor en cuenta corriente, suma stock de fruta y mueve envases.
type GoodsIntake struct {
	ID         string
	SupplierID string
	Number     string
	Date       time.Time
	Total      decimal.Decimal // suma de las pesadas
	Notes      string
	WeighIns   []WeighIn
	Containers []ContainerMove
	CreatedAt  time.Time
	CreatedBy  string // UserID
}

// WeighIn una pesada de la balanza: kilos de un producto a un precio.
type WeighIn struct {
	ID         string
	IntakeID   string
	ProductID  string
	Kg         decimal.Decimal
	PricePerKg decimal.Decimal
	Amount     decimal.Decimal // Kg * PricePerKg
}
