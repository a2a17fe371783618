// Package cuenta concentra la convención de signos de la cuenta corriente.
// Convención única: un monto firmado positivo significa que la parte nos debe.
// Ningún otro paquete decide signos; los constructores piden la dirección con
// DirectionFor y el Reconciler suma con SignedAmount.
package cuenta

import (
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// SignedAmount devuelve el monto firmado de un asiento: debit suma, credit resta.
func SignedAmount(e *entity.LedgerEntry) decimal.Decimal {
	if e.Direction == entity.DirectionDebit {
		return e.Amount
	}
	return e.Amount.Neg()
}

// DirectionFor devuelve la dirección del asiento que genera un documento según
// su tipo y el rol de la parte. Casos:
//
//	salida a cliente      -> debit  (el cliente nos debe más)
//	cobranza de cliente   -> credit (el cliente nos debe menos)
//	ingreso de proveedor  -> credit (le debemos más al proveedor)
//	pago a proveedor      -> debit  (le debemos menos)
//	retención             -> debit  (reduce lo que le debemos / compensa deuda)
func DirectionFor(docType, partyType string) (string, error) {
	switch docType {
	case entity.DocTypeGoodsOutflow:
		if partyType == entity.PartyTypeClient {
			return entity.DirectionDebit, nil
		}
	case entity.DocTypeCollection:
		if partyType == entity.PartyTypeClient {
			return entity.DirectionCredit, nil
		}
	case entity.DocTypeGoodsIntake:
		if partyType == entity.PartyTypeSupplier {
			return entity.DirectionCredit, nil
		}
	case entity.DocTypePayment, entity.DocTypeRetention:
		if partyType == entity.PartyTypeSupplier {
			return entity.DirectionDebit, nil
		}
	}
	return "", ErrNoConvention
}

// Round2 redondea a 2 decimales (centavos), el granularidad de todos los saldos.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
