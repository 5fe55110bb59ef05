package db

import (
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NormalizeDSN trims quotes and whitespace around the configured DSN.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	return s
}

// GetDSN fetches DATABASE_DSN and normalizes it.
func GetDSN() string { return NormalizeDSN(os.Getenv("DATABASE_DSN")) }

// IsSQLite reports whether the DSN targets a SQLite file or in-memory db.
func IsSQLite(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "file:") || strings.HasSuffix(lower, ".db") ||
		strings.HasSuffix(lower, ".sqlite") || strings.Contains(lower, ":memory:")
}

// Dialector picks the GORM driver from the DSN shape: postgres:// URLs,
// SQLite file paths, and MySQL user:pass@tcp(...) strings otherwise.
func Dialector(dsn string) gorm.Dialector {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgres.Open(dsn)
	case IsSQLite(dsn):
		return sqlite.Open(dsn)
	default:
		return mysql.Open(dsn)
	}
}
