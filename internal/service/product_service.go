package service

import (
	"errors"

	"go-stock-tracker/internal/apperror"
	"go-stock-tracker/internal/model"
	"go-stock-tracker/internal/repository"
	"go-stock-tracker/internal/ws"
	"go-stock-tracker/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(name string, quantity int, actor string) (*model.Product, error)
	Update(id uuid.UUID, name, actor string) (*model.Product, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Product, error)
	List() ([]model.Product, error)
}

type productService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	hub         *ws.Hub
	log         *logger.Logger
}

func NewProductService(db *gorm.DB, productRepo repository.ProductRepository, hub *ws.Hub, log *logger.Logger) ProductService {
	return &productService{
		db:          db,
		productRepo: productRepo,
		hub:         hub,
		log:         log,
	}
}

// Create allocates the next P#### code and inserts the product in one
// transaction. The sequence row lock serializes concurrent creates.
func (s *productService) Create(name string, quantity int, actor string) (*model.Product, error) {
	if name == "" {
		return nil, apperror.InvalidInput("Product name is required")
	}
	if quantity < 0 {
		return nil, apperror.InvalidInput("Quantity must be a non-negative number")
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		code, err := s.productRepo.NextCode(tx)
		if err != nil {
			return apperror.Storage(err)
		}

		p := &model.Product{
			Code:     code,
			Name:     name,
			Quantity: quantity,
		}
		p.CreatedBy = actor
		p.UpdatedBy = actor
		if err := s.productRepo.Create(tx, p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("Product code already exists")
			}
			return apperror.Storage(err)
		}

		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("code", product.Code).
		Str("name", product.Name).
		Msg("product created")
	if s.hub != nil {
		go s.hub.Publish(ws.StockUpdate{
			Action:    "product_created",
			ProductID: product.ID.String(),
			Code:      product.Code,
			Name:      product.Name,
			Quantity:  product.Quantity,
			Actor:     actor,
		})
	}
	return product, nil
}

// Update renames the product. Code and quantity are immutable here:
// quantity only moves through the stock service.
func (s *productService) Update(id uuid.UUID, name, actor string) (*model.Product, error) {
	if name == "" {
		return nil, apperror.InvalidInput("Product name is required")
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}

		p.Name = name
		p.UpdatedBy = actor
		if err := s.productRepo.Save(tx, p); err != nil {
			return apperror.Storage(err)
		}

		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product and truncates its ledger. The movements are
// not reconciled first; this is an accepted destructive operation.
func (s *productService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return notFoundOr(err, "Product not found")
		}
		if err := s.productRepo.Delete(tx, p); err != nil {
			return apperror.Storage(err)
		}
		s.log.Info().Str("code", p.Code).Msg("product deleted")
		return nil
	})
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Product not found")
	}
	return p, nil
}

func (s *productService) List() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return products, nil
}
