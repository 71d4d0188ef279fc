package db

import (
	"strings" // String normalisation

	"pens_market/internal/config" // Custom package for configuration

	"github.com/glebarez/sqlite" // Pure Go SQLite driver for GORM
	"github.com/pkg/errors"      // Error wrapping
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger configuration
)

// Supported store drivers
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open connects to the store selected by cfg.DBDriver. The SQLite file is created when missing.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.DBDriver) {
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.DBPath)
	case DriverMySQL:
		dialector = mysql.Open(cfg.MySQLDSN())
	default:
		return nil, errors.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
	gcfg := &gorm.Config{TranslateError: true}
	if cfg.IsProd {
		gcfg.Logger = logger.Default.LogMode(logger.Silent) // Keep SQL out of production logs
	}
	gdb, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", cfg.DBDriver)
	}
	return gdb, nil
}

// Close releases the connection pool behind gdb
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	return sqlDB.Close()
}
