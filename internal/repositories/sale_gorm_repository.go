package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kasir/internal/models"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{
		db: db,
	}
}

// GetAll retrieves every sale. Ordering is unspecified here, the ledger
// service sorts most-recent-first.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Find(&sales).Error; err != nil {
		return nil, wrapStorageErr("sales", "read all", err)
	}
	return sales, nil
}

// GetByID retrieves a single sale by its ID.
func (r *GORMSaleRepository) GetByID(id string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sale %s: %w", id, ErrNotFound)
		}
		return nil, wrapStorageErr("sales", "read", err)
	}
	return &sale, nil
}

// Insert appends a new sale and fails with ErrDuplicateKey when the ID
// already exists.
func (r *GORMSaleRepository) Insert(sale *models.Sale) error {
	if err := r.db.Create(sale).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("sale %s: %w", sale.ID, ErrDuplicateKey)
		}
		return wrapStorageErr("sales", "insert", err)
	}
	return nil
}

// Put creates the sale or replaces the existing record entirely. Only the
// restore path uses this.
func (r *GORMSaleRepository) Put(sale *models.Sale) error {
	err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(sale).Error
	if err != nil {
		return wrapStorageErr("sales", "put", err)
	}
	return nil
}
