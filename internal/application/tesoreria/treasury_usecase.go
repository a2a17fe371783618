package tesoreria

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// TreasuryUseCase administra cajas y cuentas bancarias y sus asientos manuales.
type TreasuryUseCase struct {
	txRunner     TxRunner
	treasuryRepo repository.TreasuryRepository
}

// NewTreasuryUseCase construye el caso de uso.
func NewTreasuryUseCase(txRunner TxRunner, treasuryRepo repository.TreasuryRepository) *TreasuryUseCase {
	return &TreasuryUseCase{txRunner: txRunner, treasuryRepo: treasuryRepo}
}

// AccountInput entrada para crear una cuenta de tesorería.
type AccountInput struct {
	Kind           string
	Name           string
	InitialBalance decimal.Decimal
}

// CreateAccount da de alta una caja o cuenta bancaria.
func (uc *TreasuryUseCase) CreateAccount(ctx context.Context, input AccountInput) (*entity.TreasuryAccount, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Kind != entity.TreasuryKindCashBox && input.Kind != entity.TreasuryKindBank {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.TreasuryAccount{
		ID:        uuid.New().String(),
		Kind:      input.Kind,
		Name:      input.Name,
		Balance:   domaincuenta.Round2(input.InitialBalance),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.treasuryRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount devuelve una cuenta por id.
func (uc *TreasuryUseCase) GetAccount(ctx context.Context, id string) (*entity.TreasuryAccount, error) {
	account, err := uc.treasuryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

// ListAccounts devuelve todas las cuentas.
func (uc *TreasuryUseCase) ListAccounts(ctx context.Context) ([]*entity.TreasuryAccount, error) {
	return uc.treasuryRepo.List()
}

// DeleteAccount elimina una cuenta sin movimientos. Con historial devuelve
// ErrAccountHasHistory; el saldo se preserva borrando asientos primero.
func (uc *TreasuryUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.treasuryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	count, err := uc.treasuryRepo.CountEntries(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrAccountHasHistory
	}
	return uc.treasuryRepo.Delete(id)
}

// ManualEntryInput entrada para un asiento manual de caja/banco.
type ManualEntryInput struct {
	AccountID string
	Kind      string // income | expense
	Amount    decimal.Decimal
	Concept   string
	Date      time.Time
	UserID    string
}

// CreateManualEntry asienta un ingreso o egreso manual y ajusta el saldo en la
// misma transacción. No lleva registro de efectos: el asiento manual se borra
// con DeleteManualEntry, que revierte el saldo por sí mismo.
func (uc *TreasuryUseCase) CreateManualEntry(ctx context.Context, input ManualEntryInput) (*entity.TreasuryEntry, error) {
	if input.AccountID == "" || input.Concept == "" || !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.Kind != entity.TreasuryEntryIncome && input.Kind != entity.TreasuryEntryExpense {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	entry := &entity.TreasuryEntry{
		ID:        uuid.New().String(),
		AccountID: input.AccountID,
		Kind:      input.Kind,
		Amount:    domaincuenta.Round2(input.Amount),
		Concept:   input.Concept,
		Date:      date,
		CreatedAt: now,
		CreatedBy: input.UserID,
	}

	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		account, err := tx.Treasury.GetForUpdate(input.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		balance := account.Balance
		if input.Kind == entity.TreasuryEntryIncome {
			balance = balance.Add(entry.Amount)
		} else {
			balance = balance.Sub(entry.Amount)
		}
		if err := tx.Treasury.UpdateBalance(input.AccountID, domaincuenta.Round2(balance)); err != nil {
			return err
		}
		return tx.Treasury.CreateEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteManualEntry borra un asiento manual revirtiendo su impacto en el saldo.
// Los asientos generados por documentos se revierten anulando el documento.
func (uc *TreasuryUseCase) DeleteManualEntry(ctx context.Context, entryID string) error {
	return uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		entry, err := tx.Treasury.GetEntry(entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.DocType != "" {
			return domain.ErrConflict
		}
		account, err := tx.Treasury.GetForUpdate(entry.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		balance := account.Balance
		if entry.Kind == entity.TreasuryEntryIncome {
			balance = balance.Sub(entry.Amount)
		} else {
			balance = balance.Add(entry.Amount)
		}
		if err := tx.Treasury.UpdateBalance(entry.AccountID, domaincuenta.Round2(balance)); err != nil {
			return err
		}
		return tx.Treasury.DeleteEntry(entryID)
	})
}

// ListEntries devuelve los asientos de una cuenta, más recientes primero.
func (uc *TreasuryUseCase) ListEntries(ctx context.Context, accountID string, limit, offset int) ([]*entity.TreasuryEntry, error) {
	return uc.treasuryRepo.ListEntries(accountID, limit, offset)
}
