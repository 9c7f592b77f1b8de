package service

import (
	"context"
	"errors"

	"github.com/Omc12/StockSimple/internal/dto"
	"github.com/Omc12/StockSimple/internal/model"
	"github.com/Omc12/StockSimple/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultReorderPoint = 10

// CatalogService defines the business logic contract for products.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	// UpdateBySKU applies a partial field set; the SKU is the lookup key.
	UpdateBySKU(ctx context.Context, sku string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	// Delete marks the product inactive. The row and its movement history
	// survive so the ledger never holds dangling references.
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, ErrSKUTaken
	}

	reorderPoint := defaultReorderPoint
	if req.ReorderPoint != nil {
		reorderPoint = *req.ReorderPoint
	}
	p := &model.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Cost:         req.Cost,
		CurrentStock: req.CurrentStock,
		ReorderPoint: reorderPoint,
		Active:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// The unique index catches a concurrent create racing the pre-check;
		// anything else is a real storage failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUTaken
		}
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *catalogService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = toProductResponse(&products[i])
	}
	return resp, nil
}

func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *catalogService) UpdateBySKU(ctx context.Context, sku string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.CurrentStock != nil {
		p.CurrentStock = *req.CurrentStock
	}
	if req.ReorderPoint != nil {
		p.ReorderPoint = *req.ReorderPoint
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.SoftDelete(ctx, id)
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID.String(),
		SKU:          p.SKU,
		Name:         p.Name,
		Cost:         p.Cost,
		CurrentStock: p.CurrentStock,
		ReorderPoint: p.ReorderPoint,
	}
}
