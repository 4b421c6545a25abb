package model

// Product is a catalog entry together with its current on-hand quantity.
//
// Quantity is a materialized projection of the stockin/stockout ledger:
// it must always equal initial quantity + sum(IN) - sum(OUT) over the
// movements that currently exist. Only the stock service writes it, and
// only inside the same transaction as the movement row it compensates.
type Product struct {
	BaseModel
	Code     string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Quantity int    `gorm:"not null;default:0" json:"quantity"`

	// Relations
	StockIns  []StockIn  `gorm:"constraint:OnDelete:CASCADE" json:"stock_ins,omitempty"`
	StockOuts []StockOut `gorm:"constraint:OnDelete:CASCADE" json:"stock_outs,omitempty"`
}
