// Package analytics contiene los casos de uso del Dashboard: totales y alertas de stock
// y vencimiento calculadas al leer.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/application/usecase"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	invdomain "github.com/jhoicas/medsupply-api/internal/domain/inventory"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

const dashboardRecentMovements = 7 // movimientos en el widget de actividad reciente

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: repositorios de productos y movimientos (consultas read-only).
// Las alertas se recalculan en cada lectura; nada se persiste.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movementRepo: movementRepo, now: time.Now}
}

// WithClock reemplaza el reloj con el que se evalúan las alertas.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos consultas en paralelo:
//  1. productos → totales y alertas (stock bajo, vencidos, por vencer)
//  2. movimientos → los 7 más recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type movementsResult struct {
		list []*entity.Movement
		err  error
	}

	productsCh := make(chan productsResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.movementRepo.List(ctx)
		movementsCh <- movementsResult{list, err}
	}()

	products := <-productsCh
	movements := <-movementsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movements.err)
	}

	now := uc.now()
	alerts := invdomain.Alerts(products.list, now)

	recent := movements.list
	if len(recent) > dashboardRecentMovements {
		recent = recent[:dashboardRecentMovements]
	}
	recentOut := make([]dto.MovementResponse, 0, len(recent))
	for _, m := range recent {
		recentOut = append(recentOut, inventory.ToMovementResponse(m))
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   len(products.list),
		LowStockCount:   len(alerts.LowStock),
		ExpiringCount:   len(alerts.ExpiringSoon),
		ExpiredCount:    len(alerts.Expired),
		LowStock:        toResponses(alerts.LowStock, now),
		ExpiringSoon:    toResponses(alerts.ExpiringSoon, now),
		Expired:         toResponses(alerts.Expired, now),
		RecentMovements: recentOut,
	}, nil
}

func toResponses(list []*entity.Product, now time.Time) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, usecase.ToProductResponse(p, now))
	}
	return out
}
