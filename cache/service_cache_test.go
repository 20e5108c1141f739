package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhavesh4825f/project/models"
)

// Without Redis the cache must degrade to a no-op rather than panic;
// the portal runs fine with the database alone.
func TestServiceCacheNilClientIsNoOp(t *testing.T) {
	sc := NewServiceCache(nil)
	ctx := context.Background()

	require.Nil(t, sc.GetActive(ctx))
	require.NotPanics(t, func() {
		sc.SetActive(ctx, []models.Service{{Name: "PAN Card"}})
		sc.Invalidate(ctx)
	})
	require.Nil(t, sc.GetActive(ctx))
}

func TestServiceCacheNilReceiver(t *testing.T) {
	var sc *ServiceCache
	ctx := context.Background()

	require.NotPanics(t, func() {
		sc.GetActive(ctx)
		sc.SetActive(ctx, nil)
		sc.Invalidate(ctx)
	})
}
