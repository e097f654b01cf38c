package domain

import (
	"regexp"
	"time"
)

// Zapatilla is a catalog entry. Catalog reads are public.
type Zapatilla struct {
	ID             string    `json:"id" bson:"_id"`
	Marca          string    `json:"marca" bson:"marca"`
	Modelo         string    `json:"modelo" bson:"modelo"`
	CodigoProducto string    `json:"codigoProducto" bson:"codigo_producto"`
	Talla          float64   `json:"talla" bson:"talla"`
	Color          string    `json:"color" bson:"color"`
	Tipo           string    `json:"tipo" bson:"tipo"`
	Precio         float64   `json:"precio" bson:"precio"`
	Stock          int       `json:"stock" bson:"stock"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updated_at"`
}

// Shoe types accepted by the catalog.
var ZapatillaTipos = []string{"Running", "Basketball", "Training", "Casual", "Trail"}

var codigoProductoPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}[A-Z]{2}$`)

// ValidCodigoProducto reports whether code has the NI1234KE shape.
func ValidCodigoProducto(code string) bool {
	return codigoProductoPattern.MatchString(code)
}
