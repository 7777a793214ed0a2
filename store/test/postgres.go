package test

import (
	"os"
	"testing"
)

// GetPostgresDSN returns the DSN of a PostgreSQL database with pgvector
// installed. Tests that need it are skipped when RAMEN_TEST_POSTGRES_DSN
// is not set.
func GetPostgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("RAMEN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RAMEN_TEST_POSTGRES_DSN not set")
	}
	return dsn
}
