package service

import (
	"errors"
	"time"

	"go-stock-tracker/internal/apperror"
	"go-stock-tracker/internal/model"
	"go-stock-tracker/internal/repository"
	"go-stock-tracker/internal/ws"
	"go-stock-tracker/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the reconciliation engine: every mutation inserts,
// rewrites or removes a ledger entry and compensates the product's cached
// quantity in the same transaction, so quantity always equals
// initial + sum(IN) - sum(OUT) over the movements that exist.
type StockService interface {
	RecordStockIn(productID uuid.UUID, quantity int, notes, actor string) (*model.StockIn, error)
	RecordStockOut(productID uuid.UUID, quantity int, notes, actor string) (*model.StockOut, error)
	UpdateStockIn(id uuid.UUID, quantity int, notes, actor string) (*model.StockIn, error)
	UpdateStockOut(id uuid.UUID, quantity int, notes, actor string) (*model.StockOut, error)
	DeleteStockIn(id uuid.UUID, actor string) error
	DeleteStockOut(id uuid.UUID, actor string) error
	ListStockIns(productID *uuid.UUID) ([]model.StockIn, error)
	ListStockOuts(productID *uuid.UUID) ([]model.StockOut, error)
}

type stockService struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	stockInRepo  repository.StockInRepository
	stockOutRepo repository.StockOutRepository
	hub          *ws.Hub
	log          *logger.Logger
	strictDelete bool
}

func NewStockService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	stockInRepo repository.StockInRepository,
	stockOutRepo repository.StockOutRepository,
	hub *ws.Hub,
	log *logger.Logger,
	strictDelete bool,
) StockService {
	return &stockService{
		db:           db,
		productRepo:  productRepo,
		stockInRepo:  stockInRepo,
		stockOutRepo: stockOutRepo,
		hub:          hub,
		log:          log,
		strictDelete: strictDelete,
	}
}

// notFoundOr maps a missing row to NotFound with a caller-facing message
// and everything else to StorageError.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(msg)
	}
	return apperror.Storage(err)
}

func (s *stockService) publish(action string, product *model.Product, quantity int, actor string) {
	if s.hub == nil {
		return
	}
	go s.hub.Publish(ws.StockUpdate{
		Action:    action,
		ProductID: product.ID.String(),
		Code:      product.Code,
		Name:      product.Name,
		Quantity:  quantity,
		Actor:     actor,
	})
}

func (s *stockService) RecordStockIn(productID uuid.UUID, quantity int, notes, actor string) (*model.StockIn, error) {
	if quantity <= 0 {
		return nil, apperror.InvalidInput("Quantity must be a positive number")
	}

	var created *model.StockIn
	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.productRepo.FindByIDForUpdate(tx, productID)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		m := &model.StockIn{
			ProductID: productID,
			Quantity:  quantity,
			Date:      time.Now(),
			Notes:     notes,
		}
		m.CreatedBy = actor
		m.UpdatedBy = actor
		if err := s.stockInRepo.Create(tx, m); err != nil {
			return apperror.Storage(err)
		}

		if err := s.productRepo.AdjustQuantity(tx, product.ID, quantity, actor); err != nil {
			return apperror.Storage(err)
		}

		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	newQuantity := product.Quantity + quantity
	s.log.Info().
		Str("product", product.Code).
		Int("quantity", quantity).
		Int("new_stock", newQuantity).
		Msg("stock in recorded")
	s.publish("stock_in_created", product, newQuantity, actor)
	return created, nil
}

func (s *stockService) RecordStockOut(productID uuid.UUID, quantity int, notes, actor string) (*model.StockOut, error) {
	if quantity <= 0 {
		return nil, apperror.InvalidInput("Quantity must be a positive number")
	}

	var created *model.StockOut
	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.productRepo.FindByIDForUpdate(tx, productID)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		// The row is locked, so this check cannot be raced past by a
		// concurrent stock-out on the same product.
		if product.Quantity < quantity {
			return apperror.InsufficientStock(product.Quantity)
		}

		m := &model.StockOut{
			ProductID: productID,
			Quantity:  quantity,
			Date:      time.Now(),
			Notes:     notes,
		}
		m.CreatedBy = actor
		m.UpdatedBy = actor
		if err := s.stockOutRepo.Create(tx, m); err != nil {
			return apperror.Storage(err)
		}

		if err := s.productRepo.AdjustQuantity(tx, product.ID, -quantity, actor); err != nil {
			return apperror.Storage(err)
		}

		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	newQuantity := product.Quantity - quantity
	s.log.Info().
		Str("product", product.Code).
		Int("quantity", quantity).
		Int("new_stock", newQuantity).
		Msg("stock out recorded")
	s.publish("stock_out_created", product, newQuantity, actor)
	return created, nil
}

func (s *stockService) UpdateStockIn(id uuid.UUID, quantity int, notes, actor string) (*model.StockIn, error) {
	if quantity <= 0 {
		return nil, apperror.InvalidInput("Quantity must be a positive number")
	}

	var updated *model.StockIn
	var product *model.Product
	var newQuantity int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.stockInRepo.FindByID(tx, id)
		if err != nil {
			return notFoundOr(err, "Stock-in record not found")
		}

		product, err = s.productRepo.FindByIDForUpdate(tx, m.ProductID)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		// Remove the old contribution, apply the new one.
		newQuantity = product.Quantity - m.Quantity + quantity
		if s.strictDelete && newQuantity < 0 {
			// The movement can shrink by at most the quantity still on hand.
			return apperror.WouldGoNegative(product.Quantity)
		}

		if err := s.productRepo.AdjustQuantity(tx, product.ID, quantity-m.Quantity, actor); err != nil {
			return apperror.Storage(err)
		}

		m.Quantity = quantity
		m.Notes = notes
		m.UpdatedBy = actor
		if err := s.stockInRepo.Update(tx, m); err != nil {
			return apperror.Storage(err)
		}

		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product", product.Code).
		Int("quantity", quantity).
		Int("new_stock", newQuantity).
		Msg("stock in updated")
	s.publish("stock_in_updated", product, newQuantity, actor)
	return updated, nil
}

func (s *stockService) UpdateStockOut(id uuid.UUID, quantity int, notes, actor string) (*model.StockOut, error) {
	if quantity <= 0 {
		return nil, apperror.InvalidInput("Quantity must be a positive number")
	}

	var updated *model.StockOut
	var product *model.Product
	var newQuantity int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.stockOutRepo.FindByID(tx, id)
		if err != nil {
			return notFoundOr(err, "Stock-out record not found")
		}

		product, err = s.productRepo.FindByIDForUpdate(tx, m.ProductID)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		// Ceiling: as if the old movement were reversed first.
		available := product.Quantity + m.Quantity
		if quantity > available {
			return apperror.InsufficientStock(available)
		}

		newQuantity = product.Quantity + m.Quantity - quantity
		if err := s.productRepo.AdjustQuantity(tx, product.ID, m.Quantity-quantity, actor); err != nil {
			return apperror.Storage(err)
		}

		m.Quantity = quantity
		m.Notes = notes
		m.UpdatedBy = actor
		if err := s.stockOutRepo.Update(tx, m); err != nil {
			return apperror.Storage(err)
		}

		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product", product.Code).
		Int("quantity", quantity).
		Int("new_stock", newQuantity).
		Msg("stock out updated")
	s.publish("stock_out_updated", product, newQuantity, actor)
	return updated, nil
}

// DeleteStockIn reverses the movement's contribution before removing the
// row. This can drive quantity negative when the stock was already sold
// through; strict mode rejects that instead.
func (s *stockService) DeleteStockIn(id uuid.UUID, actor string) error {
	var product *model.Product
	var newQuantity int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.stockInRepo.FindByID(tx, id)
		if err != nil {
			return notFoundOr(err, "Stock-in record not found")
		}

		product, err = s.productRepo.FindByIDForUpdate(tx, m.ProductID)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		newQuantity = product.Quantity - m.Quantity
		if s.strictDelete && newQuantity < 0 {
			return apperror.WouldGoNegative(product.Quantity)
		}

		if err := s.productRepo.AdjustQuantity(tx, product.ID, -m.Quantity, actor); err != nil {
			return apperror.Storage(err)
		}
		if err := s.stockInRepo.Delete(tx, m); err != nil {
			return apperror.Storage(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("product", product.Code).
		Int("new_stock", newQuantity).
		Msg("stock in deleted")
	s.publish("stock_in_deleted", product, newQuantity, actor)
	return nil
}

func (s *stockService) DeleteStockOut(id uuid.UUID, actor string) error {
	var product *model.Product
	var newQuantity int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.stockOutRepo.FindByID(tx, id)
		if err != nil {
			return notFoundOr(err, "Stock-out record not found")
		}

		product, err = s.productRepo.FindByIDForUpdate(tx, m.ProductID)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		newQuantity = product.Quantity + m.Quantity
		if err := s.productRepo.AdjustQuantity(tx, product.ID, m.Quantity, actor); err != nil {
			return apperror.Storage(err)
		}
		if err := s.stockOutRepo.Delete(tx, m); err != nil {
			return apperror.Storage(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("product", product.Code).
		Int("new_stock", newQuantity).
		Msg("stock out deleted")
	s.publish("stock_out_deleted", product, newQuantity, actor)
	return nil
}

func (s *stockService) ListStockIns(productID *uuid.UUID) ([]model.StockIn, error) {
	if productID != nil {
		records, err := s.stockInRepo.FindByProduct(*productID)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		return records, nil
	}
	records, err := s.stockInRepo.FindAll()
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return records, nil
}

func (s *stockService) ListStockOuts(productID *uuid.UUID) ([]model.StockOut, error) {
	if productID != nil {
		records, err := s.stockOutRepo.FindByProduct(*productID)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		return records, nil
	}
	records, err := s.stockOutRepo.FindAll()
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return records, nil
}
