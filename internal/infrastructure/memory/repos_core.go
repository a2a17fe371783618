package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var (
	_ repository.PartyRepository     = PartyRepo{}
	_ repository.LedgerRepository    = LedgerRepo{}
	_ repository.ProductRepository   = ProductRepo{}
	_ repository.ContainerRepository = ContainerRepo{}
)

// ── PartyRepo ─────────────────────────────────────────────────────────────────

type PartyRepo struct{ s *Store }

func (r PartyRepo) Create(party *entity.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *party
	r.s.parties[party.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r PartyRepo) GetByID(id string) (*entity.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r PartyRepo) GetForUpdate(id string) (*entity.Party, error) { return r.GetByID(id) }

func (r PartyRepo) List(partyType string, limit, offset int) ([]*entity.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Party
	for _, p := range r.s.parties {
		if p.Type == partyType {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r PartyRepo) ListAll() ([]*entity.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Party
	for _, p := range r.s.parties {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r PartyRepo) Update(party *entity.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parties[party.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *party
	r.s.parties[party.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r PartyRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parties[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentBalance = balance
	p.UpdatedAt = time.Now()
	r.s.countWrite()
	return nil
}

func (r PartyRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.parties, id)
	r.s.countWrite()
	return nil
}

// ── LedgerRepo ────────────────────────────────────────────────────────────────

type LedgerRepo struct{ s *Store }

func (r LedgerRepo) Create(entry *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *entry
	r.s.ledger = append(r.s.ledger, &cp)
	r.s.countWrite()
	return nil
}

func (r LedgerRepo) ListByParty(partyType, partyID string) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.PartyType == partyType && e.PartyID == partyID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sortChronological(out)
	return out, nil
}

func (r LedgerRepo) ListByPartyRange(partyType, partyID string, from, to time.Time) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.PartyType == partyType && e.PartyID == partyID && !e.Date.Before(from) && !e.Date.After(to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sortChronological(out)
	return out, nil
}

func (r LedgerRepo) ListByDoc(docType, docID string) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.DocType == docType && e.DocID == docID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sortChronological(out)
	return out, nil
}

func (r LedgerRepo) UpdateBalanceAfter(id string, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.ledger {
		if e.ID == id {
			e.BalanceAfter = balance
			r.s.countWrite()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r LedgerRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.ledger {
		if e.ID == id {
			r.s.ledger = append(r.s.ledger[:i], r.s.ledger[i+1:]...)
			r.s.countWrite()
			return nil
		}
	}
	return domain.ErrNotFound
}

// sortChronological ordena por fecha y, a igual fecha, por orden de creación.
func sortChronological(entries []*entity.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].Date.Before(entries[j].Date)
	})
}

// ── ProductRepo ───────────────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

func (r ProductRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *product
	r.s.products[product.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r ProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r ProductRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.s.products[product.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r ProductRepo) UpdateStock(id string, stockKg decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockKg = stockKg
	p.UpdatedAt = time.Now()
	r.s.countWrite()
	return nil
}

func (r ProductRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	r.s.countWrite()
	return nil
}

// ── ContainerRepo ─────────────────────────────────────────────────────────────

type ContainerRepo struct{ s *Store }

func (r ContainerRepo) CreateType(ct *entity.ContainerType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *ct
	r.s.containerTypes[ct.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r ContainerRepo) GetType(id string) (*entity.ContainerType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ct, ok := r.s.containerTypes[id]
	if !ok {
		return nil, nil
	}
	cp := *ct
	return &cp, nil
}

func (r ContainerRepo) ListTypes() ([]*entity.ContainerType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ContainerType
	for _, ct := range r.s.containerTypes {
		cp := *ct
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r ContainerRepo) GetStockForUpdate(containerTypeID string) (*entity.ContainerStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.containerStock[containerTypeID]
	if !ok {
		return &entity.ContainerStock{ContainerTypeID: containerTypeID}, nil
	}
	cp := *st
	return &cp, nil
}

func (r ContainerRepo) UpsertStock(stock *entity.ContainerStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *stock
	r.s.containerStock[stock.ContainerTypeID] = &cp
	r.s.countWrite()
	return nil
}

func (r ContainerRepo) ListStock() ([]*entity.ContainerStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ContainerStock
	for _, st := range r.s.containerStock {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

func (r ContainerRepo) GetDebtForUpdate(partyID, containerTypeID string) (*entity.ContainerDebt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.containerDebt[debtKey(partyID, containerTypeID)]
	if !ok {
		return &entity.ContainerDebt{PartyID: partyID, ContainerTypeID: containerTypeID}, nil
	}
	cp := *d
	return &cp, nil
}

func (r ContainerRepo) UpsertDebt(debt *entity.ContainerDebt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *debt
	r.s.containerDebt[debtKey(debt.PartyID, debt.ContainerTypeID)] = &cp
	r.s.countWrite()
	return nil
}

func (r ContainerRepo) ListDebtByParty(partyID string) ([]*entity.ContainerDebt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ContainerDebt
	for _, d := range r.s.containerDebt {
		if d.PartyID == partyID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func paginate[T any](in []*T, limit, offset int) []*T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
