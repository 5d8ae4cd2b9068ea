package inventory

import (
	"time"

	"github.com/jhoicas/medsupply-api/internal/domain/entity"
)

// AlertSummary agrupa los productos en alertas del dashboard.
// Los grupos NO son excluyentes: un producto vencido con 3 unidades aparece en LowStock y en Expired.
type AlertSummary struct {
	LowStock     []*entity.Product
	Expired      []*entity.Product
	ExpiringSoon []*entity.Product
}

// Alerts clasifica products en el instante now conservando el orden de entrada.
func Alerts(products []*entity.Product, now time.Time) AlertSummary {
	var s AlertSummary
	for _, p := range products {
		if p.Quantity < LowStockThreshold {
			s.LowStock = append(s.LowStock, p)
		}
		if IsExpired(p, now) {
			s.Expired = append(s.Expired, p)
		}
		if IsExpiringSoon(p, now) {
			s.ExpiringSoon = append(s.ExpiringSoon, p)
		}
	}
	return s
}
