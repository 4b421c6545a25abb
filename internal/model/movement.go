package model

import (
	"time"

	"github.com/google/uuid"
)

// MovementType tags a ledger entry with its direction in merged feeds.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockIn is a ledger entry adding quantity to its product.
type StockIn struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes"`
}

// TableName keeps the historical table name.
func (StockIn) TableName() string {
	return "stockin"
}

// StockOut is a ledger entry removing quantity from its product.
// Same shape as StockIn but stored separately.
type StockOut struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes"`
}

// TableName keeps the historical table name.
func (StockOut) TableName() string {
	return "stockout"
}
