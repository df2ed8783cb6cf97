package database

import (
	"fmt"
	"log"

	"etalase/internal/models"

	"gorm.io/gorm"
)

// InitSchema creates the users, products and settings tables, in that order,
// when they do not exist yet. Existing tables are left untouched.
func InitSchema(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Product{},
		&models.Setting{},
	}

	migrator := db.Migrator()
	for _, table := range tables {
		if migrator.HasTable(table) {
			continue
		}
		if err := migrator.CreateTable(table); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", table, err)
		}
		log.Printf("Created table for %T", table)
	}
	return nil
}
