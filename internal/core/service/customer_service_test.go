package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"testing"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory customer repository
// ---------------------------------------------------------------------------

type stubCustomerRepo struct {
	byID       map[string]*domain.Customer
	lastFilter ports.ListCustomersFilter
	listErr    error
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return domain.ErrCustomerExists
		}
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) List(_ context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Customer
	for _, c := range r.byID {
		if len(f.IDs) > 0 && !slices.Contains(f.IDs, c.ID) {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Customer{}, total, nil
	}
	end := min(skip+f.Limit, len(matched))
	return matched[skip:end], total, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.byID, id)
	return nil
}

func customerInput(email string) ports.CustomerInput {
	return ports.CustomerInput{
		Nombre:    "Pedro",
		Apellidos: "Páramo",
		Email:     email,
		Direccion: domain.Address{Calle: "Gran Vía 1", Ciudad: "Madrid", CodigoPostal: "28013"},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCustomerService_Create_LinksOwner(t *testing.T) {
	customers := newStubCustomerRepo()
	accounts := newStubAccountRepo()
	seedAccount(accounts, "acc-1", "alice", "a@example.com")
	svc := NewCustomerService(customers, accounts, discardLogger)

	c, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		CustomerInput: customerInput("pedro@example.com"),
		OwnerUsername: "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		t.Fatalf("id and timestamps must be assigned: %+v", c)
	}

	owner := accounts.accounts["alice"]
	if owner.OwnedResource() != c.ID {
		t.Fatalf("owner not linked: got %q want %q", owner.OwnedResource(), c.ID)
	}
}

func TestCustomerService_Create_UnknownOwner(t *testing.T) {
	customers := newStubCustomerRepo()
	svc := NewCustomerService(customers, newStubAccountRepo(), discardLogger)

	_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		CustomerInput: customerInput("pedro@example.com"),
		OwnerUsername: "ghost",
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if len(customers.byID) != 0 {
		t.Fatalf("customer must not be created when the owner is unknown")
	}
}

func TestCustomerService_Create_OwnerAlreadyLinked(t *testing.T) {
	customers := newStubCustomerRepo()
	accounts := newStubAccountRepo()
	existing := "cust-existing"
	accounts.put(&domain.Account{ID: "acc-1", Username: "alice", Email: "a@example.com", OwnedResourceID: &existing})
	svc := NewCustomerService(customers, accounts, discardLogger)

	_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		CustomerInput: customerInput("pedro@example.com"),
		OwnerUsername: "alice",
	})
	if !errors.Is(err, domain.ErrOwnerHasCustomer) {
		t.Fatalf("expected ErrOwnerHasCustomer, got %v", err)
	}
	if len(customers.byID) != 0 {
		t.Fatalf("customer must not be created for an account that already owns one")
	}
	if accounts.accounts["alice"].OwnedResource() != existing {
		t.Fatalf("existing link must be kept, got %q", accounts.accounts["alice"].OwnedResource())
	}
}

func TestCustomerService_Create_LinkFailureRemovesCustomer(t *testing.T) {
	customers := newStubCustomerRepo()
	accounts := newStubAccountRepo()
	seedAccount(accounts, "acc-1", "alice", "a@example.com")
	accounts.updateErr = errors.New("write conflict")
	svc := NewCustomerService(customers, accounts, discardLogger)

	_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{
		CustomerInput: customerInput("pedro@example.com"),
		OwnerUsername: "alice",
	})
	if err == nil || !errors.Is(err, accounts.updateErr) {
		t.Fatalf("expected link error, got %v", err)
	}
	if len(customers.byID) != 0 {
		t.Fatalf("unlinked customer must be removed, found %d", len(customers.byID))
	}
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), newStubAccountRepo(), discardLogger)

	if _, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput("p@example.com")}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput("p@example.com")})
	if !errors.Is(err, domain.ErrCustomerExists) {
		t.Fatalf("expected ErrCustomerExists, got %v", err)
	}
}

func TestCustomerService_List_ScopedToOwned(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, newStubAccountRepo(), discardLogger)
	a, _ := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput("a@example.com")})
	_, _ = svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput("b@example.com")})

	res, err := svc.ListCustomers(context.Background(), ports.ListCustomersInput{Scoped: true, OwnedID: a.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 1 || res.Items[0].ID != a.ID {
		t.Fatalf("expected only the owned customer, got %+v", res)
	}
}

func TestCustomerService_List_ScopedWithoutOwnedResource(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, newStubAccountRepo(), discardLogger)
	_, _ = svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput("a@example.com")})

	res, err := svc.ListCustomers(context.Background(), ports.ListCustomersInput{Scoped: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 0 || len(res.Items) != 0 {
		t.Fatalf("expected an empty page, got %+v", res)
	}
}

func TestCustomerService_List_PaginationDefaults(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, newStubAccountRepo(), discardLogger)

	res, err := svc.ListCustomers(context.Background(), ports.ListCustomersInput{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.Limit != maxPageSize {
		t.Fatalf("expected page=1 limit=%d, got page=%d limit=%d", maxPageSize, res.Page, res.Limit)
	}
	if repo.lastFilter.Limit != maxPageSize || len(repo.lastFilter.IDs) != 0 {
		t.Fatalf("unexpected filter %+v", repo.lastFilter)
	}

	res, _ = svc.ListCustomers(context.Background(), ports.ListCustomersInput{})
	if res.Limit != defaultPageSize {
		t.Fatalf("expected default limit %d, got %d", defaultPageSize, res.Limit)
	}
}

func TestCustomerService_List_TotalPages(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, newStubAccountRepo(), discardLogger)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, _ = svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput(email)})
	}

	res, err := svc.ListCustomers(context.Background(), ports.ListCustomersInput{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 3 || res.TotalPages != 2 || len(res.Items) != 1 {
		t.Fatalf("unexpected page: total=%d pages=%d items=%d", res.Total, res.TotalPages, len(res.Items))
	}
}

func TestCustomerService_UpdateAndDelete(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, newStubAccountRepo(), discardLogger)
	c, _ := svc.CreateCustomer(context.Background(), ports.CreateCustomerInput{CustomerInput: customerInput("a@example.com")})

	in := customerInput("a@example.com")
	in.Telefono = "+34 600 000 000"
	updated, err := svc.UpdateCustomer(context.Background(), c.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Telefono != in.Telefono || !updated.CreatedAt.Equal(c.CreatedAt) {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if err := svc.DeleteCustomer(context.Background(), c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetCustomer(context.Background(), c.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound after delete, got %v", err)
	}
	if _, err := svc.UpdateCustomer(context.Background(), c.ID, in); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound on update, got %v", err)
	}
}
