package repository

import (
	"context"

	"github.com/Omc12/StockSimple/internal/model"

	"gorm.io/gorm"
)

// MovementRepository gives access to the append-only stock movement ledger.
// There is deliberately no Update or Delete: history is immutable.
type MovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	List(ctx context.Context) ([]model.StockMovement, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("User").
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
