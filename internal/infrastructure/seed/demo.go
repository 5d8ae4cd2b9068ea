// Package seed carga datos de demostración en un inventario vacío.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

type demoProduct struct {
	name, category, unit, batch, expiration, supplier string
	quantity                                          int64
}

// Catálogo demo: incluye un producto vencido, uno por vencer y uno con stock bajo.
var demoProducts = []demoProduct{
	{"Paracetamol 500mg", entity.CategoryMedications, "cx", "BATCH001", "2025-12-31", "PharmaCorp", 50},
	{"Luvas Cirúrgicas M", entity.CategoryPPE, "cx", "LUV2024", "2026-06-30", "MedEquip", 5},
	{"Bisturi Descartável #15", entity.CategorySurgical, "un", "BIS2023", "2024-02-01", "SurgicalTools Inc", 100},
	{"Gaze Estéril", entity.CategoryDressing, "pct", "GAZ009", "2024-04-10", "CleanMed", 20},
}

// Demo inserta los productos de demostración solo si no hay productos.
// Devuelve cuántos insertó (0 si la tabla ya tenía datos).
func Demo(ctx context.Context, products repository.ProductRepository, now time.Time) (int, error) {
	existing, err := products.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: listar productos: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := now.UTC().Truncate(time.Microsecond)
	for i, d := range demoProducts {
		exp, err := time.Parse("2006-01-02", d.expiration)
		if err != nil {
			return i, fmt.Errorf("seed: %s: %w", d.name, err)
		}
		batch, supplier := d.batch, d.supplier
		p := &entity.Product{
			Name:           d.name,
			Category:       d.category,
			Quantity:       d.quantity,
			Unit:           d.unit,
			Batch:          &batch,
			ExpirationDate: &exp,
			Supplier:       &supplier,
			// un microsegundo de diferencia para conservar el orden de inserción en los listados
			CreatedAt: created.Add(time.Duration(i) * time.Microsecond),
		}
		if err := products.Create(ctx, p); err != nil {
			return i, fmt.Errorf("seed: %s: %w", d.name, err)
		}
	}
	return len(demoProducts), nil
}
