package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory account repository. Create enforces uniqueness the way the Mongo
// unique indexes do, independently of the Exists pre-checks.
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu        sync.Mutex
	accounts  map[string]*domain.Account // by username
	findErr   error
	createErr error
	updateErr error
	existsErr error
	creates   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	clone.Roles = append([]domain.Role(nil), a.Roles...)
	if a.OwnedResourceID != nil {
		id := *a.OwnedResourceID
		clone.OwnedResourceID = &id
	}
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.accounts {
		if existing.Username == a.Username || strings.EqualFold(existing.Email, a.Email) {
			return domain.ErrDuplicateCredential
		}
	}
	r.accounts[a.Username] = cloneAccount(a)
	r.creates++
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.accounts[username]
	return ok, nil
}

func (r *stubAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAccountRepo) Update(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.accounts[a.Username]; !ok {
		return domain.ErrAccountNotFound
	}
	r.accounts[a.Username] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) put(a *domain.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.Username] = cloneAccount(a)
}

// ---------------------------------------------------------------------------
// Event recorder
// ---------------------------------------------------------------------------

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.AccountEvent
}

func (r *recordingEvents) Record(e domain.AccountEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingEvents) types() []domain.AccountEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AccountEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// ---------------------------------------------------------------------------
// Login throttle
// ---------------------------------------------------------------------------

type stubThrottle struct {
	failures map[string]int
	max      int
	err      error
	resets   int
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) Blocked(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[username] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	t.resets++
	return nil
}

var _ ports.LoginThrottle = (*stubThrottle)(nil)
