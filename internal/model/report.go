package model

import (
	"time"

	"github.com/google/uuid"
)

// Report rows are derived from the ledger at read time, never persisted.

// StockSummaryRow aggregates one product's movement over a report window.
type StockSummaryRow struct {
	ProductID       uuid.UUID `json:"product_id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	CurrentQuantity int       `json:"current_quantity"`
	TotalStockIn    int       `json:"total_stock_in"`
	TotalStockOut   int       `json:"total_stock_out"`
	NetChange       int       `json:"net_change"`
}

// MovementDetail is one ledger entry in the merged chronological feed,
// joined with its product's code and name.
type MovementDetail struct {
	ID           uuid.UUID    `json:"id"`
	ProductID    uuid.UUID    `json:"product_id"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Quantity     int          `json:"quantity"`
	Date         time.Time    `json:"date"`
	Notes        string       `json:"notes"`
	MovementType MovementType `json:"movement_type"`
}

// StockMovementReport is the windowed report payload.
type StockMovementReport struct {
	Summary []StockSummaryRow `json:"summary"`
	Details []MovementDetail  `json:"details"`
}

// CurrentStockRow is one product's stored quantity plus its lifetime
// in/out totals, unbounded by date.
type CurrentStockRow struct {
	ProductID     uuid.UUID `json:"product_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	TotalStockIn  int       `json:"total_stock_in"`
	TotalStockOut int       `json:"total_stock_out"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
