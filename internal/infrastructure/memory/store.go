// Package memory implementa los repositorios sobre mapas en memoria.
// Sirve para los tests de los casos de uso y para el modo demo sin PostgreSQL.
// Run serializa las "transacciones" con un mutex; no hay rollback: una fn que
// falla a mitad de camino deja el estado parcial (los tests ejercitan caminos
// completos o validan antes de mutar).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

// Store almacén en memoria. Implementa todas las interfaces de repository
// y el TxRunner de los casos de uso.
type Store struct {
	mu sync.Mutex
	tx sync.Mutex // serializa Run

	parties         map[string]*entity.Party
	ledger          []*entity.LedgerEntry
	products        map[string]*entity.Product
	containerTypes  map[string]*entity.ContainerType
	containerStock  map[string]*entity.ContainerStock
	containerDebt   map[string]*entity.ContainerDebt // clave partyID + "|" + containerTypeID
	intakes         map[string]*entity.GoodsIntake
	outflows        map[string]*entity.SalesOutflow
	collections     map[string]*entity.Collection
	payments        map[string]*entity.Payment
	treasury        map[string]*entity.TreasuryAccount
	treasuryEntries map[string]*entity.TreasuryEntry
	checks          map[string]*entity.Check
	effects         []*entity.DocumentEffect
	users           map[string]*entity.User

	writes int
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		parties:         map[string]*entity.Party{},
		products:        map[string]*entity.Product{},
		containerTypes:  map[string]*entity.ContainerType{},
		containerStock:  map[string]*entity.ContainerStock{},
		containerDebt:   map[string]*entity.ContainerDebt{},
		intakes:         map[string]*entity.GoodsIntake{},
		outflows:        map[string]*entity.SalesOutflow{},
		collections:     map[string]*entity.Collection{},
		payments:        map[string]*entity.Payment{},
		treasury:        map[string]*entity.TreasuryAccount{},
		treasuryEntries: map[string]*entity.TreasuryEntry{},
		checks:          map[string]*entity.Check{},
		users:           map[string]*entity.User{},
	}
}

// Run ejecuta fn con el bundle de repositorios. Las transacciones se
// serializan entre sí (equivalente a una única conexión).
func (s *Store) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.tx.Lock()
	defer s.tx.Unlock()
	return fn(s.Bundle())
}

// Bundle devuelve el bundle de repositorios sobre este almacén.
func (s *Store) Bundle() repository.Tx {
	return repository.Tx{
		Parties:     PartyRepo{s},
		Ledger:      LedgerRepo{s},
		Products:    ProductRepo{s},
		Containers:  ContainerRepo{s},
		Intakes:     IntakeRepo{s},
		Outflows:    OutflowRepo{s},
		Collections: CollectionRepo{s},
		Payments:    PaymentRepo{s},
		Treasury:    TreasuryRepo{s},
		Checks:      CheckRepo{s},
		Effects:     EffectRepo{s},
	}
}

// Parties devuelve el repositorio de cuentas corrientes (uso fuera de tx).
func (s *Store) Parties() repository.PartyRepository { return PartyRepo{s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return UserRepo{s} }

// Writes devuelve el contador de escrituras (para tests de idempotencia).
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) countWrite() { s.writes++ }

func debtKey(partyID, containerTypeID string) string { return partyID + "|" + containerTypeID }

func sortEffects(effects []*entity.DocumentEffect) {
	sort.Slice(effects, func(i, j int) bool { return effects[i].Seq < effects[j].Seq })
}
