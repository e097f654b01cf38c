package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

type stubZapatillaService struct {
	lastList   ports.ListZapatillasInput
	lastCreate ports.CreateZapatillaInput
	lastUpdate ports.UpdateZapatillaInput
	creates    int
	deleted    []string
}

func (s *stubZapatillaService) CreateZapatilla(_ context.Context, in ports.CreateZapatillaInput) (*domain.Zapatilla, error) {
	s.creates++
	s.lastCreate = in
	return &domain.Zapatilla{ID: "zap-new", Marca: in.Marca, CodigoProducto: in.CodigoProducto}, nil
}

func (s *stubZapatillaService) GetZapatilla(_ context.Context, id string) (*domain.Zapatilla, error) {
	if id == "missing" {
		return nil, domain.ErrZapatillaNotFound
	}
	return &domain.Zapatilla{ID: id, Marca: "Nike"}, nil
}

func (s *stubZapatillaService) ListZapatillas(_ context.Context, in ports.ListZapatillasInput) (*ports.ListZapatillasResult, error) {
	s.lastList = in
	return &ports.ListZapatillasResult{
		Items: []*domain.Zapatilla{{ID: "zap-1", Marca: "Nike"}},
		Total: 1, Page: 1, Limit: 10, TotalPages: 1, SortBy: "id", Direction: "asc",
	}, nil
}

func (s *stubZapatillaService) UpdateZapatilla(_ context.Context, id string, in ports.UpdateZapatillaInput) (*domain.Zapatilla, error) {
	s.lastUpdate = in
	return &domain.Zapatilla{ID: id}, nil
}

func (s *stubZapatillaService) DeleteZapatilla(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

const validZapatillaBody = `{"marca":"Nike","modelo":"Air Max 90","codigoProducto":"NI1234KE","talla":42.5,"color":"Blanco","tipo":"Running","precio":129.99,"stock":10}`

func TestZapatillaHandler_ListIsPublic(t *testing.T) {
	for name, p := range map[string]*domain.Principal{
		"anonymous": nil,
		"user":      userPrincipal("alice", ""),
		"admin":     adminPrincipal(),
	} {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			svc := &stubZapatillaService{}
			h := NewZapatillaHandler(svc)

			c, rec := newRequestContext(e, http.MethodGet, "/api/v1/zapatillas?marca=nik&tipo=Running&page=2&limit=5&sortBy=precio&direction=desc", "", p)
			if err := h.List(c); err != nil {
				t.Fatalf("list: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			want := ports.ListZapatillasInput{Marca: "nik", Tipo: "Running", SortBy: "precio", Direction: "desc", Page: 2, Limit: 5}
			if svc.lastList != want {
				t.Fatalf("unexpected input: %+v", svc.lastList)
			}

			var body listZapatillasResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Items) != 1 || body.Items[0].ID != "zap-1" || body.SortBy != "id" {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestZapatillaHandler_List_BadPaging(t *testing.T) {
	e := newTestEcho()
	h := NewZapatillaHandler(&stubZapatillaService{})

	c, _ := newRequestContext(e, http.MethodGet, "/api/v1/zapatillas?page=abc", "", nil)
	if err := h.List(c); err == nil {
		t.Fatalf("expected error for non-numeric page")
	}
}

func TestZapatillaHandler_GetIsPublic(t *testing.T) {
	e := newTestEcho()
	h := NewZapatillaHandler(&stubZapatillaService{})

	c, rec := newRequestContext(e, http.MethodGet, "/api/v1/zapatillas/zap-1", "", nil)
	withID(c, "zap-1")
	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newRequestContext(e, http.MethodGet, "/api/v1/zapatillas/missing", "", nil)
	withID(c, "missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrZapatillaNotFound) {
		t.Fatalf("expected ErrZapatillaNotFound, got %v", err)
	}
}

func TestZapatillaHandler_Create_RequiresAdmin(t *testing.T) {
	tests := []struct {
		name    string
		p       *domain.Principal
		wantErr error
	}{
		{"anonymous", nil, domain.ErrUnauthenticated},
		{"user", userPrincipal("alice", ""), domain.ErrForbidden},
		{"admin", adminPrincipal(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			svc := &stubZapatillaService{}
			h := NewZapatillaHandler(svc)

			c, rec := newRequestContext(e, http.MethodPost, "/api/v1/zapatillas", validZapatillaBody, tt.p)
			err := h.Create(c)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if svc.creates != 0 {
					t.Fatalf("service must not be called when access is denied")
				}
				return
			}
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d", rec.Code)
			}
			if svc.lastCreate.CodigoProducto != "NI1234KE" || svc.lastCreate.Talla != 42.5 || svc.lastCreate.Stock != 10 {
				t.Fatalf("unexpected input: %+v", svc.lastCreate)
			}
		})
	}
}

func TestZapatillaHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad product code", `{"marca":"Nike","modelo":"Air","codigoProducto":"ni1234ke","talla":42,"color":"Rojo","tipo":"Running","precio":10,"stock":1}`, "codigoProducto"},
		{"size too small", `{"marca":"Nike","modelo":"Air","codigoProducto":"NI1234KE","talla":19.5,"color":"Rojo","tipo":"Running","precio":10,"stock":1}`, "talla"},
		{"unknown type", `{"marca":"Nike","modelo":"Air","codigoProducto":"NI1234KE","talla":42,"color":"Rojo","tipo":"Hiking","precio":10,"stock":1}`, "tipo"},
		{"free shoe", `{"marca":"Nike","modelo":"Air","codigoProducto":"NI1234KE","talla":42,"color":"Rojo","tipo":"Running","precio":0,"stock":1}`, "precio"},
		{"negative stock", `{"marca":"Nike","modelo":"Air","codigoProducto":"NI1234KE","talla":42,"color":"Rojo","tipo":"Running","precio":10,"stock":-1}`, "stock"},
		{"blank brand", `{"marca":"  ","modelo":"Air","codigoProducto":"NI1234KE","talla":42,"color":"Rojo","tipo":"Running","precio":10,"stock":1}`, "marca"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			svc := &stubZapatillaService{}
			h := NewZapatillaHandler(svc)

			c, _ := newRequestContext(e, http.MethodPost, "/api/v1/zapatillas", tt.body, adminPrincipal())
			err := h.Create(c)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tt.field]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.field, ve.Fields)
			}
			if svc.creates != 0 {
				t.Fatalf("service must not be called on invalid input")
			}
		})
	}
}

func TestZapatillaHandler_Update_Partial(t *testing.T) {
	e := newTestEcho()
	svc := &stubZapatillaService{}
	h := NewZapatillaHandler(svc)

	c, rec := newRequestContext(e, http.MethodPatch, "/api/v1/zapatillas/zap-1", `{"stock":0,"precio":99.5}`, adminPrincipal())
	withID(c, "zap-1")
	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	in := svc.lastUpdate
	if in.Stock == nil || *in.Stock != 0 || in.Precio == nil || *in.Precio != 99.5 {
		t.Fatalf("expected stock and precio set, got %+v", in)
	}
	if in.Talla != nil || in.Color != nil || in.Tipo != nil || in.CodigoProducto != nil {
		t.Fatalf("omitted fields must stay nil: %+v", in)
	}

	c, _ = newRequestContext(e, http.MethodPatch, "/api/v1/zapatillas/zap-1", `{"talla":60}`, adminPrincipal())
	withID(c, "zap-1")
	var ve *domain.ValidationError
	if err := h.Update(c); !errors.As(err, &ve) || ve.Fields["talla"] == "" {
		t.Fatalf("expected talla validation error, got %v", err)
	}

	c, _ = newRequestContext(e, http.MethodPut, "/api/v1/zapatillas/zap-1", `{"stock":1}`, userPrincipal("alice", ""))
	withID(c, "zap-1")
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestZapatillaHandler_Delete(t *testing.T) {
	e := newTestEcho()
	svc := &stubZapatillaService{}
	h := NewZapatillaHandler(svc)

	c, _ := newRequestContext(e, http.MethodDelete, "/api/v1/zapatillas/zap-1", "", userPrincipal("alice", ""))
	withID(c, "zap-1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	c, rec := newRequestContext(e, http.MethodDelete, "/api/v1/zapatillas/zap-1", "", adminPrincipal())
	withID(c, "zap-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent || len(svc.deleted) != 1 || svc.deleted[0] != "zap-1" {
		t.Fatalf("unexpected result: code=%d deleted=%v", rec.Code, svc.deleted)
	}
}
