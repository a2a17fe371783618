package cuenta

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// PostInTx asienta un documento en la cuenta corriente de la parte dentro de la
// transacción: resuelve la dirección con la convención central, crea el asiento
// con su snapshot de saldo y actualiza el saldo cacheado con bloqueo de fila.
func PostInTx(tx repository.Tx, partyType, partyID, docType, docID string, amount decimal.Decimal, description string, date time.Time) (*entity.LedgerEntry, error) {
	if amount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	direction, err := domaincuenta.DirectionFor(docType, partyType)
	if err != nil {
		return nil, err
	}

	party, err := tx.Parties.GetForUpdate(partyID)
	if err != nil {
		return nil, err
	}
	if party == nil || party.Type != partyType {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		PartyType:   partyType,
		PartyID:     partyID,
		Direction:   direction,
		Amount:      domaincuenta.Round2(amount),
		DocType:     docType,
		DocID:       docID,
		Description: description,
		Date:        date,
		CreatedAt:   now,
	}
	newBalance := domaincuenta.Round2(party.CurrentBalance.Add(domaincuenta.SignedAmount(entry)))
	entry.BalanceAfter = newBalance

	if err := tx.Ledger.Create(entry); err != nil {
		return nil, err
	}
	if err := tx.Parties.UpdateBalance(partyID, newBalance); err != nil {
		return nil, err
	}
	return entry, nil
}

// PartyRef identifica una cuenta corriente tocada por una operación.
type PartyRef struct {
	Type string
	ID   string
}

// RemoveDocEntriesInTx borra todos los asientos que referencian al documento,
// aplicando antes el monto inverso al saldo cacheado de cada parte dueña.
// Devuelve las partes tocadas para que la anulación las reconcilie al final.
func RemoveDocEntriesInTx(tx repository.Tx, docType, docID string) ([]PartyRef, error) {
	entries, err := tx.Ledger.ListByDoc(docType, docID)
	if err != nil {
		return nil, err
	}

	seen := map[PartyRef]bool{}
	var touched []PartyRef
	for _, e := range entries {
		party, err := tx.Parties.GetForUpdate(e.PartyID)
		if err != nil {
			return touched, err
		}
		if party != nil {
			newBalance := domaincuenta.Round2(party.CurrentBalance.Sub(domaincuenta.SignedAmount(e)))
			if err := tx.Parties.UpdateBalance(e.PartyID, newBalance); err != nil {
				return touched, err
			}
		}
		if err := tx.Ledger.Delete(e.ID); err != nil {
			return touched, err
		}
		ref := PartyRef{Type: e.PartyType, ID: e.PartyID}
		if !seen[ref] {
			seen[ref] = true
			touched = append(touched, ref)
		}
	}
	return touched, nil
}
