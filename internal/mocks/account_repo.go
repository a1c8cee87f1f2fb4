// Package mocks implementaciones en memoria de los puertos, para tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/vendorhub/portal-api/internal/domain"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*FakeAccountRepo)(nil)

// FakeAccountRepo repositorio de cuentas en memoria. Si FailWith está
// seteado, toda operación devuelve ese error (simula DB caída).
type FakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	FailWith error
}

// NewFakeAccountRepo construye el repositorio vacío.
func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

// Seed inserta cuentas directamente, sin chequeos.
func (r *FakeAccountRepo) Seed(accs ...*entity.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range accs {
		cp := *a
		r.accounts[a.ID] = &cp
	}
}

func (r *FakeAccountRepo) Create(ctx context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	for _, other := range r.accounts {
		if other.Email == a.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *FakeAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *FakeAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeAccountRepo) Update(ctx context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	if _, ok := r.accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *FakeAccountRepo) UpdateApproval(ctx context.Context, id string, approvedAt *time.Time, approvedByID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.ApprovedAt = approvedAt
	a.ApprovedByID = approvedByID
	return nil
}

func (r *FakeAccountRepo) UpdateFeatureFlags(ctx context.Context, id string, flags entity.FeatureFlags) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	cp := flags
	a.FeatureFlags = &cp
	return nil
}

func (r *FakeAccountRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	cp := at
	a.LastLoginAt = &cp
	return nil
}

func (r *FakeAccountRepo) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *FakeAccountRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	var out []*entity.Account
	for _, a := range r.accounts {
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		if f.Approval == repository.ApprovalPending && a.ApprovedAt != nil {
			continue
		}
		if f.Approval == repository.ApprovalApproved && a.ApprovedAt == nil {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *FakeAccountRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	delete(r.accounts, id)
	return nil
}
