package models

import "time"

// Setting is a key/value pair seeded outside the application.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey;type:varchar(255)"`
	Value     *string   `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}
