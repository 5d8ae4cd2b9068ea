package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement registro inmutable de una entrada o salida de stock de un producto.
// Quantity es siempre positiva; el signo lo da Type.
type Movement struct {
	ID        int64
	ProductID int64
	Type      string
	Quantity  int64
	Date      time.Time
}

// Delta devuelve el cambio con signo que el movimiento aplica a la cantidad del producto.
func (m *Movement) Delta() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
