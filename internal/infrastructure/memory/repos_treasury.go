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
	_ repository.TreasuryRepository = TreasuryRepo{}
	_ repository.CheckRepository    = CheckRepo{}
	_ repository.EffectRepository   = EffectRepo{}
	_ repository.UserRepository     = UserRepo{}
)

// ── TreasuryRepo ──────────────────────────────────────────────────────────────

type TreasuryRepo struct{ s *Store }

func (r TreasuryRepo) Create(account *entity.TreasuryAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *account
	r.s.treasury[account.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r TreasuryRepo) GetByID(id string) (*entity.TreasuryAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.treasury[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r TreasuryRepo) GetForUpdate(id string) (*entity.TreasuryAccount, error) { return r.GetByID(id) }

func (r TreasuryRepo) List() ([]*entity.TreasuryAccount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TreasuryAccount
	for _, a := range r.s.treasury {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r TreasuryRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.treasury[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	r.s.countWrite()
	return nil
}

func (r TreasuryRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.treasury, id)
	r.s.countWrite()
	return nil
}

func (r TreasuryRepo) CreateEntry(entry *entity.TreasuryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *entry
	r.s.treasuryEntries[entry.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r TreasuryRepo) ListEntries(accountID string, limit, offset int) ([]*entity.TreasuryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TreasuryEntry
	for _, e := range r.s.treasuryEntries {
		if e.AccountID == accountID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r TreasuryRepo) GetEntry(id string) (*entity.TreasuryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.treasuryEntries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r TreasuryRepo) DeleteEntry(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.treasuryEntries, id)
	r.s.countWrite()
	return nil
}

func (r TreasuryRepo) DeleteEntriesByDoc(docType, docID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.treasuryEntries {
		if e.DocType == docType && e.DocID == docID {
			delete(r.s.treasuryEntries, id)
			r.s.countWrite()
		}
	}
	return nil
}

func (r TreasuryRepo) CountEntries(accountID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.treasuryEntries {
		if e.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

// ── CheckRepo ─────────────────────────────────────────────────────────────────

type CheckRepo struct{ s *Store }

func (r CheckRepo) Create(check *entity.Check) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *check
	r.s.checks[check.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r CheckRepo) GetByID(id string) (*entity.Check, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.checks[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r CheckRepo) GetForUpdate(id string) (*entity.Check, error) { return r.GetByID(id) }

func (r CheckRepo) ListByStatus(status string, limit, offset int) ([]*entity.Check, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Check
	for _, c := range r.s.checks {
		if c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return paginate(out, limit, offset), nil
}

func (r CheckRepo) List(limit, offset int) ([]*entity.Check, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Check
	for _, c := range r.s.checks {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return paginate(out, limit, offset), nil
}

func (r CheckRepo) Update(check *entity.Check) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.checks[check.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *check
	r.s.checks[check.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r CheckRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.checks, id)
	r.s.countWrite()
	return nil
}

func (r CheckRepo) CountByParty(partyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.checks {
		if c.PartyID == partyID {
			n++
		}
	}
	return n, nil
}

// ── EffectRepo ────────────────────────────────────────────────────────────────

type EffectRepo struct{ s *Store }

func (r EffectRepo) CreateBatch(effects []*entity.DocumentEffect) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range effects {
		cp := *e
		r.s.effects = append(r.s.effects, &cp)
		r.s.countWrite()
	}
	return nil
}

func (r EffectRepo) ListByDoc(docType, docID string) ([]*entity.DocumentEffect, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.DocumentEffect
	for _, e := range r.s.effects {
		if e.DocType == docType && e.DocID == docID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sortEffects(out)
	return out, nil
}

func (r EffectRepo) DeleteByDoc(docType, docID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.effects[:0]
	for _, e := range r.s.effects {
		if e.DocType == docType && e.DocID == docID {
			r.s.countWrite()
			continue
		}
		kept = append(kept, e)
	}
	r.s.effects = kept
	return nil
}

// ── UserRepo ──────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

func (r UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
