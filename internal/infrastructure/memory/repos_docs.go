package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/frutasur/empaque-api/internal/domain"
	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/domain/repository"
)

var (
	_ repository.GoodsIntakeRepository  = IntakeRepo{}
	_ repository.SalesOutflowRepository = OutflowRepo{}
	_ repository.CollectionRepository   = CollectionRepo{}
	_ repository.PaymentRepository      = PaymentRepo{}
)

// ── IntakeRepo ────────────────────────────────────────────────────────────────

type IntakeRepo struct{ s *Store }

func (r IntakeRepo) Create(intake *entity.GoodsIntake) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *intake
	r.s.intakes[intake.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r IntakeRepo) GetByID(id string) (*entity.GoodsIntake, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.intakes[id]
	if !ok {
		return nil, nil
	}
	cp := *in
	return &cp, nil
}

func (r IntakeRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.GoodsIntake, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.GoodsIntake
	for _, in := range r.s.intakes {
		if in.SupplierID == supplierID {
			cp := *in
			out = append(out, &cp)
		}
	}
	sortIntakes(out)
	return paginate(out, limit, offset), nil
}

func (r IntakeRepo) List(limit, offset int) ([]*entity.GoodsIntake, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.GoodsIntake
	for _, in := range r.s.intakes {
		cp := *in
		out = append(out, &cp)
	}
	sortIntakes(out)
	return paginate(out, limit, offset), nil
}

func (r IntakeRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.intakes, id)
	r.s.countWrite()
	return nil
}

func (r IntakeRepo) CountBySupplier(supplierID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, in := range r.s.intakes {
		if in.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func sortIntakes(in []*entity.GoodsIntake) {
	sort.Slice(in, func(i, j int) bool { return in[i].Date.After(in[j].Date) })
}

// ── OutflowRepo ───────────────────────────────────────────────────────────────

type OutflowRepo struct{ s *Store }

func (r OutflowRepo) Create(outflow *entity.SalesOutflow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *outflow
	r.s.outflows[outflow.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r OutflowRepo) GetByID(id string) (*entity.SalesOutflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.outflows[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r OutflowRepo) GetForUpdate(id string) (*entity.SalesOutflow, error) { return r.GetByID(id) }

func (r OutflowRepo) ListByClient(clientID string, limit, offset int) ([]*entity.SalesOutflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalesOutflow
	for _, o := range r.s.outflows {
		if o.ClientID == clientID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sortOutflows(out)
	return paginate(out, limit, offset), nil
}

func (r OutflowRepo) List(limit, offset int) ([]*entity.SalesOutflow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalesOutflow
	for _, o := range r.s.outflows {
		cp := *o
		out = append(out, &cp)
	}
	sortOutflows(out)
	return paginate(out, limit, offset), nil
}

func (r OutflowRepo) UpdateCollected(id string, amountCollected decimal.Decimal, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.outflows[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.AmountCollected = amountCollected
	o.PaymentStatus = status
	r.s.countWrite()
	return nil
}

func (r OutflowRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.outflows, id)
	r.s.countWrite()
	return nil
}

func (r OutflowRepo) CountByClient(clientID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.outflows {
		if o.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func sortOutflows(out []*entity.SalesOutflow) {
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
}

// ── CollectionRepo ────────────────────────────────────────────────────────────

type CollectionRepo struct{ s *Store }

func (r CollectionRepo) Create(collection *entity.Collection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *collection
	r.s.collections[collection.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r CollectionRepo) GetByID(id string) (*entity.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.collections[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r CollectionRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Collection
	for _, c := range r.s.collections {
		if c.ClientID == clientID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r CollectionRepo) List(limit, offset int) ([]*entity.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Collection
	for _, c := range r.s.collections {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r CollectionRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.collections, id)
	r.s.countWrite()
	return nil
}

func (r CollectionRepo) CountByClient(clientID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.collections {
		if c.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

// ── PaymentRepo ───────────────────────────────────────────────────────────────

type PaymentRepo struct{ s *Store }

func (r PaymentRepo) Create(payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *payment
	r.s.payments[payment.ID] = &cp
	r.s.countWrite()
	return nil
}

func (r PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r PaymentRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.SupplierID == supplierID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r PaymentRepo) List(limit, offset int) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

func (r PaymentRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.payments, id)
	r.s.countWrite()
	return nil
}

func (r PaymentRepo) CountBySupplier(supplierID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.payments {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}
