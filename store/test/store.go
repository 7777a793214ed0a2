package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/watayuraType-C/playground-ramen-concierge/internal/profile"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
	"github.com/watayuraType-C/playground-ramen-concierge/store/db"
)

// NewTestingStore opens a migrated, empty store for the driver chosen by
// RAMEN_TEST_DRIVER (sqlite by default).
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()
	profile := getTestingProfile(t)
	driver, err := db.NewDBDriver(profile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	s := store.New(driver, profile)
	t.Cleanup(func() {
		s.Close()
	})
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	if profile.Driver == "postgres" {
		// The PostgreSQL database outlives a single test.
		if _, err := driver.GetDB().ExecContext(ctx, "DELETE FROM ramen_shop"); err != nil {
			t.Fatalf("failed to reset db: %v", err)
		}
	}
	return s
}

func getTestingProfile(t *testing.T) *profile.Profile {
	t.Helper()
	mode := "dev"
	driver := getDriverFromEnv()
	dir := t.TempDir()

	var dsn string
	switch driver {
	case "postgres":
		dsn = GetPostgresDSN(t)
	default:
		dsn = filepath.Join(dir, "ramen_test.db")
	}

	return &profile.Profile{
		Mode:    mode,
		Data:    dir,
		DSN:     dsn,
		Driver:  driver,
		Version: "test",
	}
}

func getDriverFromEnv() string {
	if driver := os.Getenv("RAMEN_TEST_DRIVER"); driver != "" {
		return driver
	}
	return "sqlite"
}
