package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Los grupos de alerta no son excluyentes entre sí.
type DashboardSummaryDTO struct {
	TotalProducts   int                `json:"totalProducts"`
	LowStockCount   int                `json:"lowStockCount"`
	ExpiringCount   int                `json:"expiringSoonCount"`
	ExpiredCount    int                `json:"expiredCount"`
	LowStock        []ProductResponse  `json:"lowStock"`
	ExpiringSoon    []ProductResponse  `json:"expiringSoon"`
	Expired         []ProductResponse  `json:"expired"`
	RecentMovements []MovementResponse `json:"recentMovements"` // los 7 más recientes
}
