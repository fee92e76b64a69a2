package repositories

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"routeadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAuditRepositoryRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO route_delete_audit").
		WithArgs("42", "failure", "wrong password", "req-1", nil, at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := AuditRepository{DB: db, Driver: "mysql"}
	err = repo.Record(context.Background(), domain.AuditEntry{
		RouteID:   "42",
		Outcome:   domain.OutcomeFailure,
		Detail:    "wrong password",
		RequestID: "req-1",
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuditRepositoryRecordPgxPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := AuditRepository{DB: db, Driver: "pgx"}
	if err := repo.Record(context.Background(), domain.AuditEntry{RouteID: "1", Outcome: domain.OutcomeSuccess}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

type validDetail struct {
	want string
}

func (m validDetail) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && utf8.ValidString(s) && s == m.want
}

func TestAuditRepositoryRecordTruncatesCyrillicDetail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO route_delete_audit").
		WithArgs("7", "failure", validDetail{want: strings.Repeat("ж", 200) + strings.Repeat("ш", 55)}, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := AuditRepository{DB: db, Driver: "pgx"}
	err = repo.Record(context.Background(), domain.AuditEntry{
		RouteID: "7",
		Outcome: domain.OutcomeFailure,
		Detail:  strings.Repeat("ж", 200) + strings.Repeat("ш", 100),
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuditRepositoryListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, route_id, outcome").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "outcome", "detail", "request_id", "session_id", "created_at"}).
			AddRow(2, "8", "success", "", "req-2", "s", at).
			AddRow(1, "7", "error", "dial tcp", "req-1", "s", at))

	repo := AuditRepository{DB: db, Driver: "sqlite3"}
	entries, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecent returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RouteID != "8" || entries[0].Outcome != domain.OutcomeSuccess {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Outcome != domain.OutcomeError || entries[1].Detail != "dial tcp" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuditRepositoryEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS route_delete_audit").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (AuditRepository{DB: db, Driver: "mysql"}).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
