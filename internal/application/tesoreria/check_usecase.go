package tesoreria

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/frutasur/empaque-api/internal/domain"
	domaincuenta "github.com/frutasur/empaque-api/internal/domain/cuenta"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// CheckUseCase transiciones manuales de la cartera de cheques. El depósito es
// el único movimiento que toca plata: acredita la cuenta bancaria destino.
type CheckUseCase struct {
	txRunner  TxRunner
	checkRepo repository.CheckRepository
}

// NewCheckUseCase construye el caso de uso.
func NewCheckUseCase(txRunner TxRunner, checkRepo repository.CheckRepository) *CheckUseCase {
	return &CheckUseCase{txRunner: txRunner, checkRepo: checkRepo}
}

// Get devuelve un cheque por id.
func (uc *CheckUseCase) Get(ctx context.Context, id string) (*entity.Check, error) {
	check, err := uc.checkRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, domain.ErrNotFound
	}
	return check, nil
}

// ListByStatus devuelve los cheques en un estado dado (la cartera con
// in_portfolio). Con estado vacío lista todos.
func (uc *CheckUseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Check, error) {
	if status == "" {
		return uc.checkRepo.List(limit, offset)
	}
	return uc.checkRepo.ListByStatus(status, limit, offset)
}

// Deposit deposita un cheque en cartera en una cuenta bancaria: cambia el
// estado, acredita el banco y asienta el ingreso, todo en una transacción.
func (uc *CheckUseCase) Deposit(ctx context.Context, checkID, bankAccountID, userID string) (*entity.Check, error) {
	if checkID == "" || bankAccountID == "" {
		return nil, domain.ErrInvalidInput
	}
	var deposited *entity.Check
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		check, err := tx.Checks.GetForUpdate(checkID)
		if err != nil {
			return err
		}
		if check == nil {
			return domain.ErrNotFound
		}
		if !entity.ValidCheckTransition(check.Status, entity.CheckStatusDeposited) {
			return domain.ErrCheckState
		}

		account, err := tx.Treasury.GetForUpdate(bankAccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		if account.Kind != entity.TreasuryKindBank {
			return domain.ErrInvalidInput
		}
		if err := tx.Treasury.UpdateBalance(bankAccountID, domaincuenta.Round2(account.Balance.Add(check.Amount))); err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Treasury.CreateEntry(&entity.TreasuryEntry{
			ID:        uuid.New().String(),
			AccountID: bankAccountID,
			Kind:      entity.TreasuryEntryIncome,
			Amount:    check.Amount,
			Concept:   fmt.Sprintf("Depósito cheque %s %s", check.BankName, check.Number),
			DocType:   "check_deposit",
			DocID:     check.ID,
			Date:      now,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}

		check.Status = entity.CheckStatusDeposited
		check.DepositBank = bankAccountID
		check.UpdatedAt = now
		if err := tx.Checks.Update(check); err != nil {
			return err
		}
		deposited = check
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deposited, nil
}

// UpdateStatus aplica una transición manual sin movimiento de plata
// (endosado, entregado o rechazado). Valida contra la máquina de estados.
func (uc *CheckUseCase) UpdateStatus(ctx context.Context, checkID, status string) (*entity.Check, error) {
	switch status {
	case entity.CheckStatusEndorsed, entity.CheckStatusDelivered, entity.CheckStatusRejected, entity.CheckStatusInPortfolio:
	default:
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Check
	err := uc.txRunner.Run(ctx, func(tx repository.Tx) error {
		check, err := tx.Checks.GetForUpdate(checkID)
		if err != nil {
			return err
		}
		if check == nil {
			return domain.ErrNotFound
		}
		if !entity.ValidCheckTransition(check.Status, status) {
			return domain.ErrCheckState
		}
		check.Status = status
		check.UpdatedAt = time.Now()
		if err := tx.Checks.Update(check); err != nil {
			return err
		}
		updated = check
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
