package database

import (
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// OpenDB creates the MySQL connection pool behind the remote artwork backend.
func OpenDB(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, errors.New("DB_DSN is not set")
	}

	// Row scanning relies on DATETIME columns arriving as time.Time.
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse DB_DSN")
	}
	cfg.ParseTime = true

	db, err := sqlx.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}

	log.Info("Database connection pool established")
	return db, nil
}
