package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta corriente.
const (
	PartyTypeClient   = "client"   // cliente (comprador de fruta)
	PartyTypeSupplier = "supplier" // proveedor (productor que entrega fruta)
)

// Party representa un cliente o proveedor con cuenta corriente.
// CurrentBalance es el saldo cacheado: se actualiza en cada transacción y el
// Reconciler lo corrige recalculando desde el mayor (ledger_entries).
// Convención: saldo positivo = la parte nos debe.
type Party struct {
	ID             string
	Type           string // client | supplier
	Name           string
	TaxID          string // CUIT
	Phone          string
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
