package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits kept by the price column.
const PriceScale = 2

// MaxPrice is the exclusive upper bound of the numeric(10,2) price column.
var MaxPrice = decimal.New(1, 8)

// Product represents a catalog entry.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Description *string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
}
