package db

import (
	"pens_market/internal/domain" // Importing domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// Models lists every table owned by the store
var Models = []any{&domain.User{}, &domain.Pen{}, &domain.Cart{}, &domain.Purchase{}}

// Migrate creates missing tables, columns and indexes. Reference columns stay plain integers, no foreign key constraints are created.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models...); err != nil {
		return errors.Wrap(err, "migration failed")
	}
	return nil
}
