package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un asiento de cuenta corriente.
const (
	DirectionDebit  = "debit"  // aumenta lo que la parte nos debe
	DirectionCredit = "credit" // disminuye lo que la parte nos debe
)

// Tipos de documento que originan asientos.
const (
	DocTypeGoodsIntake  = "goods_intake"  // ingreso de fruta (remito de entrada)
	DocTypeGoodsOutflow = "goods_outflow" // salida / venta
	DocTypeCollection   = "collection"    // cobranza a cliente
	DocTypePayment      = "payment"       // pago a proveedor
	DocTypeRetention    = "retention"     // retención impositiva
)

// LedgerEntry es un asiento del mayor de cuenta corriente.
// BalanceAfter es un snapshot consultivo del saldo resultante; el Reconciler
// lo reescribe al recalcular y nunca se usa como fuente de verdad.
// El asiento se elimina (no se contra-asienta) cuando se anula el documento origen.
type LedgerEntry struct {
	ID           string
	PartyType    string
	PartyID      string
	Direction    string          // debit | credit
	Amount       decimal.Decimal // siempre >= 0
	DocType      string
	DocID        string
	BalanceAfter decimal.Decimal
	Description  string
	Date         time.Time
	CreatedAt    time.Time
}
