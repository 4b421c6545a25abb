package repository

import (
	"sort"
	"time"

	"go-stock-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRepository is the read side: pure aggregation over the ledger,
// no mutation, safe to run concurrently with anything.
type ReportRepository interface {
	SummarizeWindow(start, end time.Time) ([]model.StockSummaryRow, error)
	MovementsInWindow(start, end time.Time) ([]model.MovementDetail, error)
	CurrentStock() ([]model.CurrentStockRow, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

type quantitySum struct {
	ProductID uuid.UUID
	Total     int
}

// sumByProduct aggregates movement quantities per product over a window.
// Date bounds are always bound as typed parameters.
func (r *reportRepo) sumByProduct(mdl interface{}, start, end time.Time) (map[uuid.UUID]int, error) {
	var sums []quantitySum
	err := r.db.Model(mdl).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Where("date BETWEEN ? AND ?", start, end).
		Group("product_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uuid.UUID]int, len(sums))
	for _, s := range sums {
		byProduct[s.ProductID] = s.Total
	}
	return byProduct, nil
}

func (r *reportRepo) sumByProductLifetime(mdl interface{}) (map[uuid.UUID]int, error) {
	var sums []quantitySum
	err := r.db.Model(mdl).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Group("product_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uuid.UUID]int, len(sums))
	for _, s := range sums {
		byProduct[s.ProductID] = s.Total
	}
	return byProduct, nil
}

// SummarizeWindow returns one row per product, ordered by name, including
// products with zero movement in the window.
func (r *reportRepo) SummarizeWindow(start, end time.Time) ([]model.StockSummaryRow, error) {
	var products []model.Product
	if err := r.db.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}

	ins, err := r.sumByProduct(&model.StockIn{}, start, end)
	if err != nil {
		return nil, err
	}
	outs, err := r.sumByProduct(&model.StockOut{}, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]model.StockSummaryRow, 0, len(products))
	for _, p := range products {
		totalIn := ins[p.ID]
		totalOut := outs[p.ID]
		rows = append(rows, model.StockSummaryRow{
			ProductID:       p.ID,
			Code:            p.Code,
			Name:            p.Name,
			CurrentQuantity: p.Quantity,
			TotalStockIn:    totalIn,
			TotalStockOut:   totalOut,
			NetChange:       totalIn - totalOut,
		})
	}
	return rows, nil
}

// MovementsInWindow merges the IN and OUT ledgers over a window into one
// feed sorted by date descending.
func (r *reportRepo) MovementsInWindow(start, end time.Time) ([]model.MovementDetail, error) {
	var ins []model.StockIn
	if err := r.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Find(&ins).Error; err != nil {
		return nil, err
	}

	var outs []model.StockOut
	if err := r.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Find(&outs).Error; err != nil {
		return nil, err
	}

	details := make([]model.MovementDetail, 0, len(ins)+len(outs))
	for _, m := range ins {
		d := model.MovementDetail{
			ID:           m.ID,
			ProductID:    m.ProductID,
			Quantity:     m.Quantity,
			Date:         m.Date,
			Notes:        m.Notes,
			MovementType: model.MovementIn,
		}
		if m.Product != nil {
			d.Code = m.Product.Code
			d.Name = m.Product.Name
		}
		details = append(details, d)
	}
	for _, m := range outs {
		d := model.MovementDetail{
			ID:           m.ID,
			ProductID:    m.ProductID,
			Quantity:     m.Quantity,
			Date:         m.Date,
			Notes:        m.Notes,
			MovementType: model.MovementOut,
		}
		if m.Product != nil {
			d.Code = m.Product.Code
			d.Name = m.Product.Name
		}
		details = append(details, d)
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Date.After(details[j].Date)
	})
	return details, nil
}

// CurrentStock returns every product's cached quantity plus lifetime
// in/out totals, ordered by name.
func (r *reportRepo) CurrentStock() ([]model.CurrentStockRow, error) {
	var products []model.Product
	if err := r.db.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}

	ins, err := r.sumByProductLifetime(&model.StockIn{})
	if err != nil {
		return nil, err
	}
	outs, err := r.sumByProductLifetime(&model.StockOut{})
	if err != nil {
		return nil, err
	}

	rows := make([]model.CurrentStockRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, model.CurrentStockRow{
			ProductID:     p.ID,
			Code:          p.Code,
			Name:          p.Name,
			Quantity:      p.Quantity,
			TotalStockIn:  ins[p.ID],
			TotalStockOut: outs[p.ID],
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	return rows, nil
}
