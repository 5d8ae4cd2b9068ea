package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// Punteros para distinguir campos ausentes de valores cero.
type CreateMovementRequest struct {
	ProductID *int64  `json:"productId"`
	Type      *string `json:"type"`
	Quantity  *int64  `json:"quantity"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Date      time.Time `json:"date"`
}
