package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "routeadmin/internal/config"
	intdb "routeadmin/internal/db"
	"routeadmin/internal/domain"
	"routeadmin/internal/utils"
)

const (
	auditTable = "route_delete_audit"
	// detail is VARCHAR(255); both MySQL and Postgres count characters.
	detailMaxChars = 255
)

// AuditRepository persists delete attempts made through the console.
type AuditRepository struct {
	DB     *sql.DB
	Driver string
}

func (r AuditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AuditRepository) q(query string) string {
	return intdb.Rebind(r.Driver, query)
}

// EnsureSchema creates the journal table when it does not exist yet.
func (r AuditRepository) EnsureSchema(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "audit db is not available"}
	}
	ddl := `CREATE TABLE IF NOT EXISTS ` + auditTable + ` (
		id ` + intdb.AutoIncrementPK(r.Driver) + `,
		route_id VARCHAR(64) NOT NULL,
		outcome VARCHAR(16) NOT NULL,
		detail VARCHAR(255) NULL,
		request_id VARCHAR(64) NULL,
		session_id VARCHAR(64) NULL,
		created_at TIMESTAMP NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w", auditTable, err)
	}
	return nil
}

// Record inserts one entry. The password is not part of AuditEntry and is never stored.
func (r AuditRepository) Record(ctx context.Context, e domain.AuditEntry) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "audit db is not available"}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	detail := utils.TruncateRunes(e.Detail, detailMaxChars)
	_, err := db.ExecContext(ctx, r.q(`
		INSERT INTO `+auditTable+` (route_id, outcome, detail, request_id, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), e.RouteID, string(e.Outcome), intdb.NullIfEmpty(detail), intdb.NullIfEmpty(e.RequestID), intdb.NullIfEmpty(e.SessionID), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r AuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	db := r.db()
	if db == nil {
		return []domain.AuditEntry{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := db.QueryContext(ctx, r.q(`
		SELECT id, route_id, outcome, COALESCE(detail,''), COALESCE(request_id,''), COALESCE(session_id,''), created_at
		FROM `+auditTable+`
		ORDER BY id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		var outcome string
		if err := rows.Scan(&e.ID, &e.RouteID, &outcome, &e.Detail, &e.RequestID, &e.SessionID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Outcome = domain.DeleteOutcome(outcome)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
