package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kasir/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves every product. Ordering is unspecified here, the caller
// sorts if it cares.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, wrapStorageErr("products", "read all", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, wrapStorageErr("products", "read", err)
	}
	return &product, nil
}

// Insert creates a new product and fails with ErrDuplicateKey when the ID
// already exists.
func (r *GORMProductRepository) Insert(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("product %s: %w", product.ID, ErrDuplicateKey)
		}
		return wrapStorageErr("products", "insert", err)
	}
	return nil
}

// Put creates the product or replaces the existing record entirely.
func (r *GORMProductRepository) Put(product *models.Product) error {
	err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(product).Error
	if err != nil {
		return wrapStorageErr("products", "put", err)
	}
	return nil
}

// Delete removes a product by its ID. A missing ID is a no-op, not an error.
func (r *GORMProductRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return wrapStorageErr("products", "delete", err)
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
