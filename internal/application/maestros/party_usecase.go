// Package maestros administra los datos maestros: partes (clientes y
// proveedores), productos y tipos de envase.
package maestros

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// PartyUseCase alta, baja y modificación de clientes y proveedores.
type PartyUseCase struct {
	partyRepo  repository.PartyRepository
	ledgerRepo repository.LedgerRepository
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(partyRepo repository.PartyRepository, ledgerRepo repository.LedgerRepository) *PartyUseCase {
	return &PartyUseCase{partyRepo: partyRepo, ledgerRepo: ledgerRepo}
}

// PartyInput entrada de alta/modificación de una parte.
type PartyInput struct {
	Type  string
	Name  string
	TaxID string
	Phone string
}

// Create da de alta un cliente o proveedor con saldo cero.
func (uc *PartyUseCase) Create(ctx context.Context, input PartyInput) (*entity.Party, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.PartyTypeClient && input.Type != entity.PartyTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	party := &entity.Party{
		ID:             uuid.New().String(),
		Type:           input.Type,
		Name:           input.Name,
		TaxID:          input.TaxID,
		Phone:          input.Phone,
		CurrentBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.partyRepo.Create(party); err != nil {
		return nil, err
	}
	return party, nil
}

// Get devuelve una parte por id.
func (uc *PartyUseCase) Get(ctx context.Context, id string) (*entity.Party, error) {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	return party, nil
}

// List devuelve las partes de un tipo, paginadas.
func (uc *PartyUseCase) List(ctx context.Context, partyType string, limit, offset int) ([]*entity.Party, error) {
	if partyType != entity.PartyTypeClient && partyType != entity.PartyTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	return uc.partyRepo.List(partyType, limit, offset)
}

// Update modifica los datos de contacto. El tipo y el saldo no se tocan.
func (uc *PartyUseCase) Update(ctx context.Context, id string, input PartyInput) (*entity.Party, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	party.Name = input.Name
	party.TaxID = input.TaxID
	party.Phone = input.Phone
	party.UpdatedAt = time.Now()
	if err := uc.partyRepo.Update(party); err != nil {
		return nil, err
	}
	return party, nil
}

// Delete elimina una parte sin historial. Con asientos en el mayor devuelve
// ErrPartyHasHistory: el borrado se ofrece recién cuando la anulación de su
// último documento la deja huérfana, y aun así nunca es automático.
func (uc *PartyUseCase) Delete(ctx context.Context, id string) error {
	party, err := uc.partyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if party == nil {
		return domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByParty(party.Type, id)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return domain.ErrPartyHasHistory
	}
	return uc.partyRepo.Delete(id)
}
