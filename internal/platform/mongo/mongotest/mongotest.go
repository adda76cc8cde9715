// Package mongotest gives integration tests an isolated database on the server named by
// MONGO_TEST_URI. Tests are skipped when the variable is unset.
package mongotest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	platformmongo "stock_sentiment/internal/platform/mongo"
)

// Gateway connects, switches to a fresh database with indexes and drops it on cleanup.
func Gateway(t *testing.T) *platformmongo.Gateway {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base, err := platformmongo.Connect(ctx, uri)
	require.NoError(t, err)

	g := base.WithDatabase(fmt.Sprintf("test_%s", uuid.NewString()[:8]))
	require.NoError(t, g.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = g.Database().Drop(ctx)
		_ = base.Close(ctx)
	})
	return g
}
