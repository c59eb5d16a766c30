// Package testutil builds throwaway stores for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/repo"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
)

// NewSQLiteRepo returns a migrated in-memory store that is closed with the test.
func NewSQLiteRepo(t testing.TB) *repo.GormRepo {
	t.Helper()

	gdb, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	r := repo.NewGormRepo(gdb)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}
