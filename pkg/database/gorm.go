package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type options struct {
	logLevel logger.LogLevel
}

type Option func(*options)

// WithLogLevel sets the gorm SQL log level. Defaults to logger.Warn.
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // FindOne treats not-found as nil
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, driver Driver) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if driver == DriverSQLite {
		// One writer at a time; an in-memory database also lives on a single connection.
		sqlDB.SetMaxOpenConns(1)
		return nil
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// ParseURL picks the driver for a DB_URL value. sqlite://<path> selects
// SQLite, anything else (postgres:// URL or key=value DSN) selects Postgres.
func ParseURL(url string) (Driver, string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", fmt.Errorf("database url is empty")
	}
	if strings.HasPrefix(strings.ToLower(url), sqliteScheme) {
		path := url[len(sqliteScheme):]
		if path == "" {
			return "", "", fmt.Errorf("sqlite url has no path: %q", url)
		}
		return DriverSQLite, path, nil
	}
	return DriverPostgres, url, nil
}

// NewGormDBFromDSN opens the database named by a DB_URL value.
func NewGormDBFromDSN(url string, opts ...Option) (*gorm.DB, error) {
	o := options{logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	driver, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: getLogger(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := configureConnectionPool(db, driver); err != nil {
		return nil, err
	}

	return db, nil
}
