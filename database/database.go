package database

import (
	"database/sql"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mbolis/interview-survey/config"
	"github.com/pkg/errors"
)

// Open connects to the SQLite file named by cfg.DBUrl and brings its schema
// up to date.
func Open(cfg config.Config) (db *sql.DB, err error) {
	db, err = sql.Open("sqlite3", dsn(cfg.DBUrl))
	if err != nil {
		return nil, errors.Wrap(err, "database.open")
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database.ping")
	}

	if err = migrateDB(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database.migrate")
	}

	return db, nil
}

// dsn turns a file path into a go-sqlite3 DSN. Pragmas are set through the
// DSN so that every pooled connection gets them.
func dsn(path string) string {
	params := url.Values{
		"_foreign_keys": {"on"},
		"_busy_timeout": {"5000"},
		"_journal_mode": {"WAL"},
	}
	return "file:" + path + "?" + params.Encode()
}
