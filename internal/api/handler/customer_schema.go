package handler

import (
	"time"

	"github.com/pabloab/zapatillas-api/internal/core/domain"
	"github.com/pabloab/zapatillas-api/internal/core/ports"
)

type addressRequest struct {
	Calle        string `json:"calle"        validate:"max=200"`
	Ciudad       string `json:"ciudad"       validate:"max=100"`
	CodigoPostal string `json:"codigoPostal" validate:"max=10"`
	Provincia    string `json:"provincia"    validate:"max=100"`
}

type customerRequest struct {
	Nombre    string         `json:"nombre"    validate:"notblank,max=100"`
	Apellidos string         `json:"apellidos" validate:"max=150"`
	Email     string         `json:"email"     validate:"required,email,max=254"`
	Telefono  string         `json:"telefono"  validate:"max=30"`
	Direccion addressRequest `json:"direccion"`
}

type createCustomerRequest struct {
	Nombre        string         `json:"nombre"        validate:"notblank,max=100"`
	Apellidos     string         `json:"apellidos"     validate:"max=150"`
	Email         string         `json:"email"         validate:"required,email,max=254"`
	Telefono      string         `json:"telefono"      validate:"max=30"`
	Direccion     addressRequest `json:"direccion"`
	OwnerUsername string         `json:"ownerUsername" validate:"max=50"`
}

func (r createCustomerRequest) toInput() ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		CustomerInput: customerRequest{
			Nombre:    r.Nombre,
			Apellidos: r.Apellidos,
			Email:     r.Email,
			Telefono:  r.Telefono,
			Direccion: r.Direccion,
		}.toInput(),
		OwnerUsername: r.OwnerUsername,
	}
}

// Response-only types owned by the transport layer.

type addressResponse struct {
	Calle        string `json:"calle"`
	Ciudad       string `json:"ciudad"`
	CodigoPostal string `json:"codigoPostal"`
	Provincia    string `json:"provincia,omitempty"`
}

type customerResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Apellidos string          `json:"apellidos"`
	Email     string          `json:"email"`
	Telefono  string          `json:"telefono,omitempty"`
	Direccion addressResponse `json:"direccion"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type listCustomersResponse struct {
	Items      []customerResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

func (r customerRequest) toInput() ports.CustomerInput {
	return ports.CustomerInput{
		Nombre:    r.Nombre,
		Apellidos: r.Apellidos,
		Email:     r.Email,
		Telefono:  r.Telefono,
		Direccion: domain.Address{
			Calle:        r.Direccion.Calle,
			Ciudad:       r.Direccion.Ciudad,
			CodigoPostal: r.Direccion.CodigoPostal,
			Provincia:    r.Direccion.Provincia,
		},
	}
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Apellidos: c.Apellidos,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Direccion: addressResponse{
			Calle:        c.Direccion.Calle,
			Ciudad:       c.Direccion.Ciudad,
			CodigoPostal: c.Direccion.CodigoPostal,
			Provincia:    c.Direccion.Provincia,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
