package repositories

import (
	"kasir/internal/models"
)

// SaleRepository defines the interface for sale data access. There is
// deliberately no Delete: the ledger is append-only, and Put exists only so
// a restore can overwrite colliding IDs wholesale.
type SaleRepository interface {
	GetAll() ([]models.Sale, error)
	GetByID(id string) (*models.Sale, error)
	Insert(sale *models.Sale) error
	Put(sale *models.Sale) error
}
