package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB opens the audit journal database (idempotent). It returns nil
// without error when no audit driver is configured.
func ConnectDB(env Env) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}
	if env.AuditDriver == "" {
		return nil, nil
	}

	db, err := sql.Open(env.AuditDriver, env.AuditDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", env.AuditDriver, err)
	}

	if env.AuditDriver == "sqlite3" {
		// single writer keeps sqlite from returning SQLITE_BUSY under load
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", env.AuditDriver, err)
	}

	DB = db
	log.Printf("audit journal connected driver=%s", env.AuditDriver)
	return DB, nil
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
