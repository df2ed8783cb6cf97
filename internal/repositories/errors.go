package repositories

import "errors"

var (
	// ErrNotFound is wrapped by lookups that match no row.
	ErrNotFound = errors.New("record not found")
	// ErrPriceOutOfRange is returned when a price does not fit the price column.
	ErrPriceOutOfRange = errors.New("price out of range")
)
