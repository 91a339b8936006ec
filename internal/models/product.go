package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The ID is an opaque unique string assigned at
// creation; a put with an existing ID replaces the stored record entirely,
// there is no partial merge.
type Product struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name      string          `json:"name" gorm:"index;type:varchar(100)" validate:"required,min=1,max=100"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,8)"`
	Timestamp time.Time       `json:"timestamp"` // time of last write
}
