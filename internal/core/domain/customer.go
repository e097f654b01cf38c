package domain

import "time"

// Customer is the profile record an account may own.
type Customer struct {
	ID        string    `json:"id" bson:"_id"`
	Nombre    string    `json:"nombre" bson:"nombre"`
	Apellidos string    `json:"apellidos" bson:"apellidos"`
	Email     string    `json:"email" bson:"email"`
	Telefono  string    `json:"telefono,omitempty" bson:"telefono,omitempty"`
	Direccion Address   `json:"direccion" bson:"direccion"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Address is a customer's postal address.
type Address struct {
	Calle        string `json:"calle" bson:"calle"`
	Ciudad       string `json:"ciudad" bson:"ciudad"`
	CodigoPostal string `json:"codigoPostal" bson:"codigo_postal"`
	Provincia    string `json:"provincia,omitempty" bson:"provincia,omitempty"`
}
