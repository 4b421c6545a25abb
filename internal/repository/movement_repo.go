package repository

import (
	"go-stock-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The IN and OUT ledgers have the same shape but live in separate tables,
// so each gets its own repository.

type StockInRepository interface {
	Create(tx *gorm.DB, m *model.StockIn) error
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.StockIn, error)
	Update(tx *gorm.DB, m *model.StockIn) error
	Delete(tx *gorm.DB, m *model.StockIn) error
	FindAll() ([]model.StockIn, error)
	FindByProduct(productID uuid.UUID) ([]model.StockIn, error)
}

type StockOutRepository interface {
	Create(tx *gorm.DB, m *model.StockOut) error
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.StockOut, error)
	Update(tx *gorm.DB, m *model.StockOut) error
	Delete(tx *gorm.DB, m *model.StockOut) error
	FindAll() ([]model.StockOut, error)
	FindByProduct(productID uuid.UUID) ([]model.StockOut, error)
}

type stockInRepo struct {
	db *gorm.DB
}

func NewStockInRepo(db *gorm.DB) StockInRepository {
	return &stockInRepo{db}
}

func (r *stockInRepo) Create(tx *gorm.DB, m *model.StockIn) error {
	return tx.Create(m).Error
}

func (r *stockInRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.StockIn, error) {
	var m model.StockIn
	if err := tx.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *stockInRepo) Update(tx *gorm.DB, m *model.StockIn) error {
	return tx.Model(&model.StockIn{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"quantity":   m.Quantity,
			"notes":      m.Notes,
			"updated_by": m.UpdatedBy,
		}).Error
}

func (r *stockInRepo) Delete(tx *gorm.DB, m *model.StockIn) error {
	return tx.Delete(m).Error
}

func (r *stockInRepo) FindAll() ([]model.StockIn, error) {
	var records []model.StockIn
	err := r.db.Preload("Product").Order("date DESC").Find(&records).Error
	return records, err
}

func (r *stockInRepo) FindByProduct(productID uuid.UUID) ([]model.StockIn, error) {
	var records []model.StockIn
	err := r.db.Preload("Product").
		Where("product_id = ?", productID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

type stockOutRepo struct {
	db *gorm.DB
}

func NewStockOutRepo(db *gorm.DB) StockOutRepository {
	return &stockOutRepo{db}
}

func (r *stockOutRepo) Create(tx *gorm.DB, m *model.StockOut) error {
	return tx.Create(m).Error
}

func (r *stockOutRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.StockOut, error) {
	var m model.StockOut
	if err := tx.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *stockOutRepo) Update(tx *gorm.DB, m *model.StockOut) error {
	return tx.Model(&model.StockOut{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"quantity":   m.Quantity,
			"notes":      m.Notes,
			"updated_by": m.UpdatedBy,
		}).Error
}

func (r *stockOutRepo) Delete(tx *gorm.DB, m *model.StockOut) error {
	return tx.Delete(m).Error
}

func (r *stockOutRepo) FindAll() ([]model.StockOut, error) {
	var records []model.StockOut
	err := r.db.Preload("Product").Order("date DESC").Find(&records).Error
	return records, err
}

func (r *stockOutRepo) FindByProduct(productID uuid.UUID) ([]model.StockOut, error) {
	var records []model.StockOut
	err := r.db.Preload("Product").
		Where("product_id = ?", productID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}
