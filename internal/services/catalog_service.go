package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

// ProductInput is what a caller supplies to Save. Price is a pointer so an
// omitted price is rejected outright instead of silently becoming zero and
// leaking into a full-record replace.
type ProductInput struct {
	ID    string           `json:"id"`
	Name  string           `json:"name" validate:"required,min=1,max=100"`
	Price *decimal.Decimal `json:"price" validate:"required"`
}

// CatalogService handles business logic related to products.
type CatalogService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Save stores a product. A fresh time-derived ID is assigned when the input
// carries none, the write time is stamped, and the record is upserted: an
// existing ID is replaced entirely.
func (s *CatalogService) Save(input ProductInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, &ValidationError{Field: "product", Reason: err.Error()}
	}
	if input.Price.IsNegative() {
		return nil, &ValidationError{Field: "price", Reason: "must be a non-negative number"}
	}

	product := models.Product{
		ID:        input.ID,
		Name:      input.Name,
		Price:     *input.Price,
		Timestamp: time.Now(),
	}
	if product.ID == "" {
		product.ID = models.NewID()
	}

	if err := s.repo.Put(&product); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", product.ID), zap.Error(err))
		return nil, fmt.Errorf("save product: %w", err)
	}
	s.logger.Info("product saved",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return &product, nil
}

// Remove deletes a product by ID. Removing an absent ID succeeds as a no-op,
// and removing a product never touches historical sales — their line items
// are snapshots.
func (s *CatalogService) Remove(id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to remove product", zap.String("product_id", id), zap.Error(err))
		return fmt.Errorf("remove product: %w", err)
	}
	s.logger.Info("product removed", zap.String("product_id", id))
	return nil
}

// List returns all products. Ordering and filtering are the caller's
// business.
func (s *CatalogService) List() ([]models.Product, error) {
	return s.repo.GetAll()
}
