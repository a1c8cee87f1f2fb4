package mocks

import (
	"context"
	"sync"

	"github.com/vendorhub/portal-api/internal/application/ports"
	"github.com/vendorhub/portal-api/internal/domain/entity"
)

var _ ports.Notifier = (*FakeNotifier)(nil)

// FakeNotifier registra las notificaciones disparadas. Si FailWith está
// seteado, cada llamada falla (la operación principal no debe enterarse).
type FakeNotifier struct {
	mu       sync.Mutex
	calls    []string
	FailWith error
}

// NewFakeNotifier construye el notifier de prueba.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

// Calls snapshot de las notificaciones registradas, en orden.
func (n *FakeNotifier) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.calls))
	copy(out, n.calls)
	return out
}

func (n *FakeNotifier) record(kind, email string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, kind+":"+email)
	return n.FailWith
}

func (n *FakeNotifier) VendorApproved(ctx context.Context, a *entity.Account) error {
	return n.record("approved", a.Email)
}

func (n *FakeNotifier) VendorRejected(ctx context.Context, a *entity.Account, reason string) error {
	return n.record("rejected", a.Email)
}

func (n *FakeNotifier) NewVendorSignup(ctx context.Context, a *entity.Account) error {
	return n.record("signup", a.Email)
}

func (n *FakeNotifier) PasswordReset(ctx context.Context, a *entity.Account, resetLink string) error {
	return n.record("reset", a.Email)
}
