package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un cheque. Transiciones manuales, sin vencimiento automático:
//
//	pending -> in_portfolio -> (deposited | endorsed | delivered | rejected)
const (
	CheckStatusPending     = "pending"
	CheckStatusInPortfolio = "in_portfolio"
	CheckStatusDeposited   = "deposited"
	CheckStatusEndorsed    = "endorsed"
	CheckStatusDelivered   = "delivered"
	CheckStatusRejected    = "rejected"
)

// Check cheque de terceros recibido en una cobranza o entregado en un pago.
type Check struct {
	ID           string
	Number       string
	BankName     string
	Amount       decimal.Decimal
	IssueDate    time.Time
	DueDate      time.Time
	Status       string
	PartyID      string // librador / origen
	CollectionID string // cobranza que lo ingresó (si aplica)
	PaymentID    string // pago que lo endosó/entregó (si aplica)
	DepositBank  string // cuenta de tesorería destino al depositar
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidCheckTransition indica si el cambio de estado está permitido por la máquina de estados.
func ValidCheckTransition(from, to string) bool {
	switch from {
	case CheckStatusPending:
		return to == CheckStatusInPortfolio
	case CheckStatusInPortfolio:
		switch to {
		case CheckStatusDeposited, CheckStatusEndorsed, CheckStatusDelivered, CheckStatusRejected:
			return true
		}
	}
	return false
}
