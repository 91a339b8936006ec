package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kasir/internal/models"
	"kasir/internal/repositories"
)

// LedgerService records and retrieves sales. The ledger is append-only:
// nothing here updates or deletes a sale.
type LedgerService struct {
	repo   repositories.SaleRepository
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo repositories.SaleRepository, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		repo:   repo,
		logger: logger,
	}
}

// RecordSale turns a cart snapshot into a Sale and appends it to the ledger.
// The items are copied, not referenced, so the caller's cart can be reused
// or discarded freely. The total is computed here from price × quantity,
// whatever the caller thinks it is. Calling twice with the same snapshot
// produces two distinct sales.
func (s *LedgerService) RecordSale(items []models.SaleItem) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	copied := make([]models.SaleItem, len(items))
	copy(copied, items)

	total := decimal.Zero
	for _, item := range copied {
		if item.Quantity < 1 {
			return nil, &ValidationError{
				Field:  "quantity",
				Reason: fmt.Sprintf("must be at least 1 for item %q", item.Name),
			}
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	sale := models.Sale{
		ID:        models.NewID(),
		Items:     copied,
		Total:     total,
		Timestamp: time.Now(),
	}

	if err := s.repo.Insert(&sale); err != nil {
		s.logger.Error("failed to record sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("record sale: %w", err)
	}
	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.Int("items", len(sale.Items)),
		zap.String("total", sale.Total.String()))
	return &sale, nil
}

// List returns all sales sorted most recent first. Timestamp ties are broken
// by descending ID; IDs are time-derived and increase monotonically, so that
// keeps insertion order.
func (s *LedgerService) List() ([]models.Sale, error) {
	sales, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].Timestamp.Equal(sales[j].Timestamp) {
			return sales[i].Timestamp.After(sales[j].Timestamp)
		}
		return sales[i].ID > sales[j].ID
	})
	return sales, nil
}
