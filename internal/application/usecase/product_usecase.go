package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/application/validation"
	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	invdomain "github.com/jhoicas/medsupply-api/internal/domain/inventory"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity se maneja vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// WithClock reemplaza el reloj (fecha de alta y cálculo de estado).
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// Create crea un nuevo producto. Quantity inicial opcional (0 por defecto).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.ValidateCreateProduct(in).Err(); err != nil {
		return nil, err
	}
	category, _ := entity.NormalizeCategory(in.Category)
	product := &entity.Product{
		Name:     strings.TrimSpace(in.Name),
		Category: category,
		Unit:     strings.TrimSpace(in.Unit),
		Batch:    optionalText(in.Batch),
		Supplier: optionalText(in.Supplier),
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.ExpirationDate != nil && *in.ExpirationDate != "" {
		d, _ := validation.ParseDate(*in.ExpirationDate)
		product.ExpirationDate = &d
	}
	product.CreatedAt = uc.now().UTC().Truncate(time.Microsecond)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := ToProductResponse(product, uc.now())
	return &out, nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := ToProductResponse(product, uc.now())
	return &out, nil
}

// Update aplica una actualización parcial. Devuelve (nil, nil) si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.ValidateUpdateProduct(in).Err(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category, _ = entity.NormalizeCategory(*in.Category)
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Batch != nil {
		product.Batch = optionalText(in.Batch)
	}
	if in.Supplier != nil {
		product.Supplier = optionalText(in.Supplier)
	}
	if in.ExpirationDate != nil {
		if *in.ExpirationDate == "" {
			product.ExpirationDate = nil
		} else {
			d, _ := validation.ParseDate(*in.ExpirationDate)
			product.ExpirationDate = &d
		}
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		// Borrado entre la lectura y la escritura
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := ToProductResponse(product, uc.now())
	return &out, nil
}

// List lista productos del más reciente al más antiguo, con filtros opcionales.
func (uc *ProductUseCase) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(filter.Search))
	category := ""
	if filter.Category != "" {
		c, ok := entity.NormalizeCategory(filter.Category)
		if !ok {
			return []dto.ProductResponse{}, nil
		}
		category = c
	}

	now := uc.now()
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(fold.String(p.Name), search) {
			continue
		}
		items = append(items, ToProductResponse(p, now))
	}
	return items, nil
}

// Delete elimina un producto. Si tiene movimientos se rechaza con domain.ErrConflict
// y el historial se conserva; domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		n, err := movementRepo.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
		deleted, err := productRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Categories devuelve el conjunto cerrado de categorías.
func (uc *ProductUseCase) Categories() []string {
	return entity.Categories()
}

// ToProductResponse convierte la entidad al DTO de salida calculando el estado derivado en now.
func ToProductResponse(p *entity.Product, now time.Time) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		Unit:      p.Unit,
		Batch:     p.Batch,
		Supplier:  p.Supplier,
		CreatedAt: p.CreatedAt,
		Status:    string(invdomain.Evaluate(p, now)),
	}
	if p.ExpirationDate != nil {
		s := p.ExpirationDate.Format(validation.DateLayout)
		out.ExpirationDate = &s
	}
	return out
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
