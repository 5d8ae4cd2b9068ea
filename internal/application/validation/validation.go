// Package validation contiene las reglas explícitas de cada forma de entrada
// (crear producto, actualizar producto parcial, crear movimiento).
// Cada función devuelve un Result con las violaciones en el orden en que se evalúan.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
)

// DateLayout formato de fecha de vencimiento en el transporte.
const DateLayout = "2006-01-02"

// FieldError una regla violada.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result resultado estructurado de una validación.
type Result struct {
	Errors []FieldError
}

// Valid indica si no hubo violaciones.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Err devuelve la primera violación como *domain.ValidationError, o nil.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	first := r.Errors[0]
	return &domain.ValidationError{Field: first.Field, Message: first.Message}
}

func (r *Result) add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}

// ValidateCreateProduct valida la entrada de creación de producto.
func ValidateCreateProduct(in dto.CreateProductRequest) Result {
	var r Result
	if strings.TrimSpace(in.Name) == "" {
		r.add("name", "name es requerido")
	}
	if _, ok := entity.NormalizeCategory(in.Category); !ok {
		r.add("category", categoryMessage())
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		r.add("quantity", "quantity no puede ser negativa")
	}
	if strings.TrimSpace(in.Unit) == "" {
		r.add("unit", "unit es requerido")
	}
	if in.ExpirationDate != nil && *in.ExpirationDate != "" {
		if _, err := ParseDate(*in.ExpirationDate); err != nil {
			r.add("expirationDate", err.Error())
		}
	}
	return r
}

// ValidateUpdateProduct valida una actualización parcial: solo se revisan los campos presentes.
func ValidateUpdateProduct(in dto.UpdateProductRequest) Result {
	var r Result
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		r.add("name", "name no puede estar vacío")
	}
	if in.Category != nil {
		if _, ok := entity.NormalizeCategory(*in.Category); !ok {
			r.add("category", categoryMessage())
		}
	}
	if in.Quantity != nil {
		r.add("quantity", "quantity solo se modifica mediante movimientos")
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) == "" {
		r.add("unit", "unit no puede estar vacío")
	}
	if in.ExpirationDate != nil && *in.ExpirationDate != "" {
		if _, err := ParseDate(*in.ExpirationDate); err != nil {
			r.add("expirationDate", err.Error())
		}
	}
	return r
}

// ValidateCreateMovement valida la entrada de un movimiento de stock.
func ValidateCreateMovement(in dto.CreateMovementRequest) Result {
	var r Result
	switch {
	case in.ProductID == nil:
		r.add("productId", "productId es requerido")
	case *in.ProductID <= 0:
		r.add("productId", "productId debe ser un entero positivo")
	}
	switch {
	case in.Type == nil:
		r.add("type", "type es requerido")
	case *in.Type != entity.MovementTypeIN && *in.Type != entity.MovementTypeOUT:
		r.add("type", "type debe ser IN u OUT")
	}
	switch {
	case in.Quantity == nil:
		r.add("quantity", "quantity es requerido")
	case *in.Quantity <= 0:
		r.add("quantity", "quantity debe ser un entero positivo")
	}
	return r
}

// ParseDate interpreta "YYYY-MM-DD" o un instante RFC 3339 (se toma la fecha en su propio desfase).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q, formato esperado YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func categoryMessage() string {
	return "category debe ser una de: " + strings.Join(entity.Categories(), ", ")
}
