package system

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/storage"
)

// Thursday, 15 October 2026 at noon.
var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newContext(t *testing.T, provider storage.Provider) *cli.Context {
	t.Helper()
	ctx := cli.NewContext(provider, t.TempDir())
	ctx.Clock = func() time.Time { return testNow }
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx
}

func setupSQLiteContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	return newContext(t, storage.NewSQLiteStore(dbPath)), dbPath
}
