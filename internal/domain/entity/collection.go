package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de cobranza/pago.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodCheck    = "check"
	MethodMixed    = "mixed" // varios instrumentos en una sola operación lógica
)

// Tipos de instrumento.
const (
	InstrumentCash     = "cash"
	InstrumentTransfer = "transfer"
	InstrumentCheck    = "check"
)

// Collection cobranza a un cliente. Con método mixed se abre en varios
// instrumentos, cada uno con su mutación de tesorería o alta de cheque,
// independientemente reversibles. OutflowID opcional: aplica el cobro a una
// salida concreta (actualiza monto cobrado y estado por umbrales).
type Collection struct {
	ID          string
	ClientID    string
	OutflowID   string // opcional
	Method      string
	Total       decimal.Decimal
	Date        time.Time
	Notes       string
	Instruments []Instrument
	CreatedAt   time.Time
	CreatedBy   string
}

// Payment pago a un proveedor, mismo esquema de instrumentos que Collection.
// Retention es el monto retenido (impositivo): se asienta como débito aparte
// con tipo retention, no mueve tesorería.
type Payment struct {
	ID          string
	SupplierID  string
	Method      string
	Total       decimal.Decimal
	Retention   decimal.Decimal
	Date        time.Time
	Notes       string
	Instruments []Instrument
	CreatedAt   time.Time
	CreatedBy   string
}

// Instrument una pata de una cobranza o pago: efectivo/transferencia contra una
// cuenta de tesorería, o un cheque. DocType/DocID referencian al documento padre.
type Instrument struct {
	ID                string
	DocType           string // collection | payment
	DocID             string
	Kind              string // cash | transfer | check
	TreasuryAccountID string // para cash/transfer
	CheckID           string // para check
	Amount            decimal.Decimal
}
