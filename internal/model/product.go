package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. CurrentStock is a denormalized projection of the
// stock movement ledger; it is only ever mutated through LedgerService (except
// the initial value at creation and explicit catalog corrections by SKU).
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU          string          `gorm:"uniqueIndex;not null"`
	Name         string          `gorm:"index;not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentStock int             `gorm:"not null;default:0"`
	ReorderPoint int             `gorm:"not null;default:10"`
	Active       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
