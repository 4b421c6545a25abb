package repository

import (
	"fmt"

	"go-stock-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) error
	Delete(tx *gorm.DB, product *model.Product) error
	NextCode(tx *gorm.DB) (string, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate locks the product row for the rest of the transaction.
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := forUpdate(tx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

// AdjustQuantity applies a signed delta to the cached quantity in a single
// statement, so the compensation never reads a stale value.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
		}).Error
}

// Delete truncates the product's ledger and removes the row. The movement
// deletes are explicit rather than left to the FK cascade so the behavior
// is identical on every dialect.
func (r *productRepo) Delete(tx *gorm.DB, product *model.Product) error {
	if err := tx.Where("product_id = ?", product.ID).Delete(&model.StockIn{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&model.StockOut{}).Error; err != nil {
		return err
	}
	return tx.Delete(product).Error
}

// NextCode increments the product code sequence under a row lock and
// returns the next P#### code. Must run inside the same transaction as
// the product insert that consumes it.
func (r *productRepo) NextCode(tx *gorm.DB) (string, error) {
	var seq model.Sequence
	if err := forUpdate(tx).First(&seq, "name = ?", model.SeqProductCode).Error; err != nil {
		return "", err
	}
	seq.Value++
	if err := tx.Model(&model.Sequence{}).
		Where("name = ?", seq.Name).
		Update("value", seq.Value).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("P%04d", seq.Value), nil
}
