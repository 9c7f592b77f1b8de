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

// LowStockNotifier is told when a movement leaves a product at or below its
// reorder point. Implementations must not block; notification failures never
// fail the movement.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, p *model.Product, newStock int)
}

// LedgerService owns the append-only movement history and the denormalized
// current-stock counter as one consistent unit.
//
// Clamp policy: an "out" movement larger than available stock is recorded in
// full, but the resulting stock floors at zero. Over-draws are clamped, not
// rejected (see DESIGN.md).
type LedgerService interface {
	RecordMovement(ctx context.Context, userID uuid.UUID, req dto.RecordMovementRequest) (*dto.RecordMovementResponse, error)
	ListMovements(ctx context.Context) ([]dto.MovementResponse, error)
	Alerts(ctx context.Context) ([]dto.AlertResponse, error)
	TopLowStock(ctx context.Context, n int) (*dto.TopLowStockResponse, error)
}

type ledgerService struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	notifier  LowStockNotifier // nil when alert mail is not configured
}

func NewLedgerService(products repository.ProductRepository, movements repository.MovementRepository, notifier LowStockNotifier) LedgerService {
	return &ledgerService{products: products, movements: movements, notifier: notifier}
}

func (s *ledgerService) RecordMovement(ctx context.Context, userID uuid.UUID, req dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrNotFound
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, ErrNotFound
	}

	delta := req.Quantity
	if req.Type == model.MovementOut {
		delta = -delta
	}

	movement := &model.StockMovement{
		ProductID: productID,
		UserID:    userID,
		Quantity:  req.Quantity,
		Type:      req.Type,
		Reason:    req.Reason,
	}

	// The insert and the counter update commit or roll back together. The
	// adjustment itself is a server-side atomic increment, so concurrent
	// movements against the same product cannot lose updates.
	var newStock int
	err = s.products.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.movements.CreateTx(tx, movement); err != nil {
			return err
		}
		newStock, err = s.products.AdjustStockTx(tx, productID, delta)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.notifier != nil && newStock <= product.ReorderPoint {
		product.CurrentStock = newStock
		s.notifier.NotifyLowStock(ctx, product, newStock)
	}

	return &dto.RecordMovementResponse{
		Movement: toMovementResponse(movement),
		NewStock: newStock,
	}, nil
}

func (s *ledgerService) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	movements, err := s.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovementResponse, len(movements))
	for i := range movements {
		resp[i] = toMovementResponse(&movements[i])
	}
	return resp, nil
}

func (s *ledgerService) Alerts(ctx context.Context) ([]dto.AlertResponse, error) {
	products, err := s.products.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AlertResponse, len(products))
	for i := range products {
		status := dto.AlertLowStock
		if products[i].CurrentStock == 0 {
			status = dto.AlertOutOfStock
		}
		resp[i] = dto.AlertResponse{
			ProductResponse: toProductResponse(&products[i]),
			Status:          status,
		}
	}
	return resp, nil
}

func (s *ledgerService) TopLowStock(ctx context.Context, n int) (*dto.TopLowStockResponse, error) {
	if n <= 0 {
		n = 5
	}
	top, err := s.products.ListByStock(ctx, n, true)
	if err != nil {
		return nil, err
	}
	low, err := s.products.ListByStock(ctx, n, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.TopLowStockResponse{
		TopStock: make([]dto.ProductResponse, len(top)),
		LowStock: make([]dto.ProductResponse, len(low)),
	}
	for i := range top {
		resp.TopStock[i] = toProductResponse(&top[i])
	}
	for i := range low {
		resp.LowStock[i] = toProductResponse(&low[i])
	}
	return resp, nil
}

func toMovementResponse(m *model.StockMovement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:        m.ID.String(),
		ProductID: m.ProductID.String(),
		UserID:    m.UserID.String(),
		Quantity:  m.Quantity,
		Type:      m.Type,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
	if m.Product != nil {
		resp.Product = &dto.MovementProduct{Name: m.Product.Name, SKU: m.Product.SKU}
	}
	if m.User != nil {
		resp.User = &dto.MovementUser{Name: m.User.Name, Email: m.User.Email}
	}
	return resp
}
