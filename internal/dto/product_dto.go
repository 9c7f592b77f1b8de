package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"         validate:"required,min=1,max=120"`
	SKU          string          `json:"sku"          validate:"required,alphanum,max=64"`
	Cost         decimal.Decimal `json:"cost"         validate:"required"`
	CurrentStock int             `json:"currentStock" validate:"min=0"`
	ReorderPoint *int            `json:"reorderPoint" validate:"omitempty,min=0"`
}

// UpdateProductRequest carries a partial field set; only non-nil fields are
// applied. The SKU itself is the lookup key and cannot be changed here.
type UpdateProductRequest struct {
	Name         *string          `json:"name"         validate:"omitempty,min=1,max=120"`
	Cost         *decimal.Decimal `json:"cost"`
	CurrentStock *int             `json:"currentStock" validate:"omitempty,min=0"`
	ReorderPoint *int             `json:"reorderPoint" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Cost         decimal.Decimal `json:"cost"`
	CurrentStock int             `json:"currentStock"`
	ReorderPoint int             `json:"reorderPoint"`
}

// Alert statuses. A product at zero is both out of stock and below its reorder
// point; the status field reports the stronger condition.
const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
)

type AlertResponse struct {
	ProductResponse
	Status string `json:"status"`
}

type TopLowStockResponse struct {
	TopStock []ProductResponse `json:"topStock"`
	LowStock []ProductResponse `json:"lowStock"`
}
