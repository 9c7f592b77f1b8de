package repository

import (
	"context"

	"github.com/Omc12/StockSimple/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ListAlerts returns active products at or below their reorder point,
	// lowest stock first. Ties break on sku for deterministic output.
	ListAlerts(ctx context.Context) ([]model.Product, error)
	// ListByStock returns up to limit active products ordered by current_stock;
	// desc=true gives the highest-stock products. Ties break on sku.
	ListByStock(ctx context.Context, limit int, desc bool) ([]model.Product, error)

	// WithTx runs fn inside a storage transaction. The ledger uses it to make
	// the movement insert and the counter update one atomic unit.
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	// AdjustStockTx applies current_stock = max(0, current_stock + delta) as a
	// single server-side statement and returns the clamped new value. Callers
	// must pass the live tx from WithTx.
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) (int, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("active = true").First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ? AND active = true", sku).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("active", false).Error
}

func (r *productRepo) ListAlerts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = true AND current_stock <= reorder_point").
		Order("current_stock ASC, sku ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListByStock(ctx context.Context, limit int, desc bool) ([]model.Product, error) {
	order := "current_stock ASC, sku ASC"
	if desc {
		order = "current_stock DESC, sku ASC"
	}
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order(order).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) (int, error) {
	var newStock int
	res := tx.Raw(`
		UPDATE products
		   SET current_stock = GREATEST(0, current_stock + ?), updated_at = NOW()
		 WHERE id = ? AND active = true
		RETURNING current_stock`, delta, id).Scan(&newStock)
	if res.Error != nil {
		return 0, res.Error
	}
	// No row returned means the product vanished (or was deactivated) after
	// the service's lookup; fail the transaction rather than commit a
	// movement against it.
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return newStock, nil
}
