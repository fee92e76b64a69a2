package db

import (
	"strconv"
	"strings"
)

// NullIfEmpty helps store optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Rebind rewrites "?" placeholders into the form the driver expects.
// pgx wants $1..$n; mysql and sqlite3 take "?" as is.
func Rebind(driver, query string) string {
	if driver != "pgx" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// AutoIncrementPK returns the primary key column definition for the driver.
func AutoIncrementPK(driver string) string {
	switch driver {
	case "pgx":
		return "BIGSERIAL PRIMARY KEY"
	case "sqlite3":
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	default:
		return "BIGINT AUTO_INCREMENT PRIMARY KEY"
	}
}
