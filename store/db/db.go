package db

import (
	"github.com/pkg/errors"

	"github.com/watayuraType-C/playground-ramen-concierge/internal/profile"
	"github.com/watayuraType-C/playground-ramen-concierge/store"
	"github.com/watayuraType-C/playground-ramen-concierge/store/db/postgres"
	"github.com/watayuraType-C/playground-ramen-concierge/store/db/sqlite"
)

// ============================================================================
// DATABASE SUPPORT POLICY
// ============================================================================
// PostgreSQL (with pgvector) is the production store.
// SQLite is for development and demo mode.
// ============================================================================

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'postgres' and 'sqlite' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
