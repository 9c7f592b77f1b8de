package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. Quantity is always the positive magnitude; the direction is
// carried by Type, never by the sign.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StockMovement is one append-only ledger entry. Rows are created once and
// never updated or deleted; the repository exposes no mutation beyond Create.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Type      string    `gorm:"type:varchar(10);not null"` // "in" | "out"
	Reason    string
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:UserID"`
}

func (StockMovement) TableName() string { return "stock_movements" }
