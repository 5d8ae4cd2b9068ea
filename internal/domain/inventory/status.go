// Package inventory contiene los servicios de dominio puros del inventario:
// estado derivado de un producto y alertas agregadas del dashboard.
package inventory

import (
	"time"

	"github.com/jhoicas/medsupply-api/internal/domain/entity"
)

// Status etiqueta derivada de un producto; nunca se persiste.
type Status string

const (
	StatusOutOfStock Status = "OUT_OF_STOCK"
	StatusLowStock   Status = "LOW_STOCK"
	StatusExpired    Status = "EXPIRED"
	StatusExpiring   Status = "EXPIRING"
	StatusInStock    Status = "IN_STOCK"
)

const (
	// LowStockThreshold cantidades estrictamente menores se consideran stock bajo.
	LowStockThreshold = 10
	// ExpiringWindowDays días hasta el vencimiento (inclusive) para marcar "por vencer".
	ExpiringWindowDays = 30
)

// Evaluate calcula el estado de p en el instante now.
// El orden de las reglas es la precedencia: un producto agotado y vencido es OUT_OF_STOCK.
func Evaluate(p *entity.Product, now time.Time) Status {
	if p.Quantity == 0 {
		return StatusOutOfStock
	}
	if p.Quantity < LowStockThreshold {
		return StatusLowStock
	}
	if IsExpired(p, now) {
		return StatusExpired
	}
	if IsExpiringSoon(p, now) {
		return StatusExpiring
	}
	return StatusInStock
}

// IsExpired: la fecha de vencimiento (medianoche local) es estrictamente anterior a now.
func IsExpired(p *entity.Product, now time.Time) bool {
	exp, ok := p.ExpiresAt(now.Location())
	return ok && exp.Before(now)
}

// IsExpiringSoon: 0 <= DaysUntil <= ExpiringWindowDays.
func IsExpiringSoon(p *entity.Product, now time.Time) bool {
	days, ok := DaysUntil(p, now)
	return ok && days >= 0 && days <= ExpiringWindowDays
}

// DaysUntil días completos entre now y la medianoche del vencimiento, truncados hacia cero.
// Un vencimiento de hoy ya pasado da 0, no -1.
func DaysUntil(p *entity.Product, now time.Time) (int, bool) {
	exp, ok := p.ExpiresAt(now.Location())
	if !ok {
		return 0, false
	}
	return int(exp.Sub(now) / (24 * time.Hour)), true
}
