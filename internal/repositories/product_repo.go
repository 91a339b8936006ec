package repositories

import (
	"kasir/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations run every call as one atomic unit: it fully commits or
// fully fails, partial writes are never observable.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Insert(product *models.Product) error
	Put(product *models.Product) error
	Delete(id string) error
}
