package entity

import "golang.org/x/text/unicode/norm"

// Categorías de producto (valores de transporte, en portugués).
const (
	CategoryMedications = "Medicamentos"
	CategorySurgical    = "Materiais cirúrgicos"
	CategoryPPE         = "EPIs"
	CategoryDressing    = "Materiais de curativo"
	CategoryDisposables = "Descartáveis"
	CategoryEquipment   = "Equipamentos"
)

// Categories lista el conjunto cerrado de categorías en orden de presentación.
func Categories() []string {
	return []string{
		CategoryMedications,
		CategorySurgical,
		CategoryPPE,
		CategoryDressing,
		CategoryDisposables,
		CategoryEquipment,
	}
}

// NormalizeCategory devuelve la categoría canónica para s (comparación en forma NFC).
// Acepta acentos descompuestos, p. ej. "Descartáveis".
func NormalizeCategory(s string) (string, bool) {
	n := norm.NFC.String(s)
	for _, c := range Categories() {
		if c == n {
			return c, true
		}
	}
	return "", false
}
