package postgres

import (
	"context"
	"database/sql"
	"eventManager/internal/config"
	"fmt"
	_ "github.com/lib/pq"
)

type Storage struct {
	DB  *sql.DB
	dsn string
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	return Open(dbCfg.DSN())
}

// Open connects to the database behind dsn, which may be a lib/pq
// key/value string or a postgres:// URL.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db, dsn: dsn}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}
