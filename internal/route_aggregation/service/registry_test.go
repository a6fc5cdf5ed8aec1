package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	docs map[string]string
	errs map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	if err, ok := f.errs[location]; ok {
		return nil, err
	}
	doc, ok := f.docs[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(doc), nil
}

const blueDoc = `
none:
  communication-route:
    cl3-cl9:
      icmp: [cl3, cf3, cf4, cf9, cl9]
`

func TestRegistryLoad(t *testing.T) {
	f := &fakeFetcher{
		docs: map[string]string{"blue.yaml": blueDoc},
		errs: map[string]error{"red.yaml": errors.New("connection refused")},
	}
	reg := NewRegistry(f, Sources{
		domain.CategoryBlue: "blue.yaml",
		domain.CategoryRed:  "red.yaml",
	})
	assert.False(t, reg.IsReady())

	_, err := reg.Recompute(context.Background(), domain.SelectionSet{"cf3-cf9": true}, nil)
	assert.True(t, errors.Is(err, domain.ErrRoutesNotReady))

	require.NoError(t, reg.Load(context.Background()))

	select {
	case <-reg.Ready():
	default:
		t.Fatal("ready channel not closed after Load")
	}

	snap := reg.Snapshot()
	assert.Equal(t, 1, snap.Tables[domain.CategoryBlue].Len())
	assert.Equal(t, 0, snap.Tables[domain.CategoryRed].Len())
	assert.Contains(t, snap.Errors[domain.CategoryRed], "connection refused")
	assert.False(t, snap.LoadedAt.IsZero())

	res, err := reg.Recompute(context.Background(), domain.SelectionSet{"cf3-cf9": true}, routers("cf3", "cf4", "cf9"))
	require.NoError(t, err)
	assert.Len(t, res.Links, 2)
}

func TestRegistryLoadMalformed(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{
		"blue.yaml": "none: [",
		"red.yaml":  blueDoc,
	}}
	reg := NewRegistry(f, Sources{domain.CategoryBlue: "blue.yaml", domain.CategoryRed: "red.yaml"})
	require.NoError(t, reg.Load(context.Background()))

	snap := reg.Snapshot()
	assert.Equal(t, 0, snap.Tables[domain.CategoryBlue].Len())
	assert.Contains(t, snap.Errors[domain.CategoryBlue], "malformed")
	assert.Equal(t, 1, snap.Tables[domain.CategoryRed].Len())
}

func TestRegistryLoadCancelled(t *testing.T) {
	reg := NewRegistry(&fakeFetcher{}, Sources{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := reg.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, reg.IsReady())
}

func TestRegistryWaitReady(t *testing.T) {
	reg := NewRegistry(&fakeFetcher{}, Sources{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := reg.WaitReady(ctx)
	assert.True(t, errors.Is(err, domain.ErrRoutesNotReady))

	go func() { _ = reg.Load(context.Background()) }()
	require.NoError(t, reg.WaitReady(context.Background()))
	assert.True(t, reg.IsReady())
}

func TestRegistryTable(t *testing.T) {
	reg := NewStaticRegistry(table(domain.CategoryRed, map[string][]string{"cl1-cl2": {"cl1", "cf1", "cl2"}}))

	tbl, err := reg.Table(domain.CategoryRed)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	tbl, err = reg.Table(domain.Category(" RED "))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = reg.Table(domain.Category("green"))
	assert.True(t, errors.Is(err, domain.ErrUnknownCategory))
}

func TestRegistryReloadKeepsTablesOnFailure(t *testing.T) {
	f := &fakeFetcher{docs: map[string]string{
		"blue.yaml": blueDoc,
		"red.yaml":  blueDoc,
	}}
	reg := NewRegistry(f, Sources{domain.CategoryBlue: "blue.yaml", domain.CategoryRed: "red.yaml"})
	require.NoError(t, reg.Load(context.Background()))
	first := reg.Snapshot()
	require.Equal(t, 1, first.Tables[domain.CategoryBlue].Len())

	f.errs = map[string]error{"blue.yaml": errors.New("connection reset")}
	f.docs["red.yaml"] = `
none:
  communication-route:
    cl1-cl2:
      icmp: [cl1, cf1, cl2]
    cl3-cl4:
      icmp: [cl3, cf3, cl4]
`
	require.NoError(t, reg.Load(context.Background()))

	snap := reg.Snapshot()
	assert.Same(t, first.Tables[domain.CategoryBlue], snap.Tables[domain.CategoryBlue])
	assert.Contains(t, snap.Errors[domain.CategoryBlue], "connection reset")
	assert.Equal(t, 2, snap.Tables[domain.CategoryRed].Len())
	assert.True(t, snap.LoadedAt.After(first.LoadedAt) || snap.LoadedAt.Equal(first.LoadedAt))
}
