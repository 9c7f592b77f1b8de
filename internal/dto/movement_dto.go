package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordMovementRequest logs one stock movement. Quantity is the positive
// magnitude; direction comes from Type.
type RecordMovementRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
	Type      string `json:"type"      validate:"required,oneof=in out"`
	Reason    string `json:"reason"    validate:"omitempty,max=255"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovementProduct struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type MovementUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MovementResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	UserID    string           `json:"userId"`
	Quantity  int              `json:"quantity"`
	Type      string           `json:"type"`
	Reason    string           `json:"reason"`
	CreatedAt time.Time        `json:"createdAt"`
	Product   *MovementProduct `json:"product,omitempty"`
	User      *MovementUser    `json:"user,omitempty"`
}

type RecordMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock int              `json:"newStock"`
}
