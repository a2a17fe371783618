package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta de tesorería.
const (
	TreasuryKindCashBox = "cash_box" // caja en efectivo
	TreasuryKindBank    = "bank"     // cuenta bancaria
)

// Tipos de asiento manual de tesorería.
const (
	TreasuryEntryIncome  = "income"
	TreasuryEntryExpense = "expense"
)

// TreasuryAccount caja o banco con saldo escalar.
// No hay partida doble: cada operación incrementa o decrementa el saldo.
type TreasuryAccount struct {
	ID        string
	Kind      string // cash_box | bank
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TreasuryEntry asiento de tesorería (ingreso varios / gasto) o rastro de un
// instrumento de cobranza/pago. DocType/DocID enlazan al documento origen para
// que la anulación los encuentre.
type TreasuryEntry struct {
	ID        string
	AccountID string
	Kind      string // income | expense
	Amount    decimal.Decimal
	Concept   string
	DocType   string // vacío para asientos manuales
	DocID     string
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}
