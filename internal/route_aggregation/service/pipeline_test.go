package service

import (
	"context"
	"errors"
	"testing"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeIdempotent(t *testing.T) {
	reg := NewStaticRegistry(
		table(domain.CategoryBlue, map[string][]string{"cl3-cl9": {"cl3", "cf3", "cf4", "cf9", "cl9"}}),
		table(domain.CategoryRed, map[string][]string{"cl9-cl3": {"cl9", "cf9", "cf4", "cl3"}}),
	)
	sel := domain.SelectionSet{"cf3-cf9": true}
	nodes := routers("cf3", "cf4", "cf9")

	first, err := reg.Recompute(context.Background(), sel, nodes)
	require.NoError(t, err)
	second, err := reg.Recompute(context.Background(), sel, nodes)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.Tally{Blue: 1}, first.Counts["cf3-cf4"])
	assert.Equal(t, domain.Tally{Blue: 1}, first.Counts["cf4-cf9"])
	// the red route is stored in the reverse orientation
	assert.Equal(t, domain.Tally{Red: 1}, first.Counts["cf9-cf4"])
	assert.Len(t, first.Links, 3)
}

func TestRecomputeEmptySelection(t *testing.T) {
	reg := NewStaticRegistry()
	res, err := reg.Recompute(context.Background(), domain.SelectionSet{}, routers("cf1"))
	require.NoError(t, err)
	assert.Empty(t, res.Links)
	assert.Equal(t, ThicknessScale{}, res.Scale)
}

func TestRecomputeNilSnapshot(t *testing.T) {
	_, err := Recompute(context.Background(), nil, nil, nil)
	assert.True(t, errors.Is(err, domain.ErrRoutesNotReady))
}
