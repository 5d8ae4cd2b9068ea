package entity

import "time"

// Product representa un insumo médico del inventario.
// Quantity solo se modifica mediante movimientos (IN/OUT); puede quedar negativa si la política lo permite.
type Product struct {
	ID             int64
	Name           string
	Category       string
	Quantity       int64
	Unit           string     // cx, un, lt, etc.
	Batch          *string    // lote
	ExpirationDate *time.Time // fecha de vencimiento (solo fecha, sin hora)
	Supplier       *string
	CreatedAt      time.Time
}

// ExpiresAt devuelve la medianoche local de la fecha de vencimiento en la zona de loc.
func (p *Product) ExpiresAt(loc *time.Location) (time.Time, bool) {
	if p.ExpirationDate == nil {
		return time.Time{}, false
	}
	y, m, d := p.ExpirationDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), true
}
