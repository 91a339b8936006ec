package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem is one line of a sale. It is a snapshot copy of the product
// fields taken at checkout, not a reference, so editing or deleting a
// product later never changes historical sales.
type SaleItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Sale is one completed transaction. Sales are append-only: nothing updates
// or deletes them in normal operation, only a restore may overwrite one by
// ID. Items are persisted as a JSON document column.
type Sale struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Items     []SaleItem      `json:"items" gorm:"serializer:json;type:text"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(20,8)"`
	Timestamp time.Time       `json:"timestamp" gorm:"index"`
}
