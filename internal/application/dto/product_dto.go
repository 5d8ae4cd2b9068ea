package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// Quantity es opcional (por defecto 0); ExpirationDate acepta "YYYY-MM-DD" o RFC 3339.
type CreateProductRequest struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Quantity       *int64  `json:"quantity"`
	Unit           string  `json:"unit"`
	Batch          *string `json:"batch"`
	ExpirationDate *string `json:"expirationDate"`
	Supplier       *string `json:"supplier"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
// En Batch, Supplier y ExpirationDate la cadena vacía borra el valor.
// Quantity se rechaza: la cantidad solo cambia mediante movimientos.
type UpdateProductRequest struct {
	Name           *string `json:"name"`
	Category       *string `json:"category"`
	Quantity       *int64  `json:"quantity"`
	Unit           *string `json:"unit"`
	Batch          *string `json:"batch"`
	ExpirationDate *string `json:"expirationDate"`
	Supplier       *string `json:"supplier"`
}

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	Search   string // subcadena del nombre, sin distinguir mayúsculas
	Category string
}

// ProductResponse salida de un producto, con el estado derivado calculado al leer.
type ProductResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Quantity       int64     `json:"quantity"`
	Unit           string    `json:"unit"`
	Batch          *string   `json:"batch"`
	ExpirationDate *string   `json:"expirationDate"` // YYYY-MM-DD
	Supplier       *string   `json:"supplier"`
	CreatedAt      time.Time `json:"createdAt"`
	Status         string    `json:"status"`
}
