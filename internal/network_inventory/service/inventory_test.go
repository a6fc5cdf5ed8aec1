package service

import (
	"context"
	"errors"
	"testing"

	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	modelsDoc = `[
		{"id": "C1", "className": "Config", "name": "CF1", "hostname": "edge-1"},
		{"id": "C2", "className": "Config", "name": "cf2"},
		{"id": "I1", "className": "Interface", "ipAddress": "10.0.0.1", "mtu": 1500},
		{"id": "R1", "className": "StaticRoute", "prefix": "0.0.0.0/0"}
	]`
	relationsDoc = `[
		{"kanren": [{"Config": "C1"}], "Interface": "I1", "StaticRoute": "R1"},
		{"kanren": [{"Config": "missing"}, {"Other": "x"}], "Interface": "I1"}
	]`
	errorsDoc = `[
		{"instances": {"I1": "IPADDRESS"}},
		{"instances": {"i1": "mtu", "C2": "hostname"}}
	]`
)

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	doc, ok := f[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(doc), nil
}

func TestBuildRouterInfo(t *testing.T) {
	inv := NewStaticInventory(nil, nil, nil)
	assert.Empty(t, inv.Routers())

	f := fakeFetcher{"m": modelsDoc, "r": relationsDoc, "e": errorsDoc}
	loaded := NewInventory(f, Sources{Models: "m", Relations: "r", Errors: "e"})
	require.NoError(t, loaded.Load(context.Background()))

	assert.Equal(t, []string{"cf1", "cf2"}, loaded.Routers())

	d, err := loaded.RouterDetail("CF1")
	require.NoError(t, err)
	assert.Equal(t, "cf1", d.Router)
	require.Len(t, d.Sections, 3)
	assert.Equal(t, "Config", d.Sections[0].ClassName)
	assert.Equal(t, "Interface", d.Sections[1].ClassName)
	assert.Equal(t, "StaticRoute", d.Sections[2].ClassName)
	assert.True(t, d.HasErrors)

	iface := d.Sections[1].Objects[0]
	assert.Equal(t, "I1", iface.ID)
	assert.True(t, iface.Error)
	require.Len(t, iface.Fields, 2)
	assert.Equal(t, domain.Field{Name: "ipAddress", Value: "10.0.0.1", Error: true}, iface.Fields[0])
	assert.Equal(t, "mtu", iface.Fields[1].Name)
	assert.True(t, iface.Fields[1].Error)
	assert.False(t, d.Sections[2].Error)

	_, err = loaded.RouterDetail("cf9")
	assert.True(t, errors.Is(err, domain.ErrRouterNotFound))
}

func TestErrorTable(t *testing.T) {
	table := BuildErrorTable([]domain.ErrorEntry{
		{Instances: map[string]string{"I1": "ipAddress"}},
		{Instances: map[string]string{"i1": "mtu"}},
	})
	assert.Equal(t, domain.ErrorTable{"i1": {"ipAddress", "mtu"}}, table)
}

func TestInventoryLoadPartialFailure(t *testing.T) {
	f := fakeFetcher{"m": modelsDoc, "e": errorsDoc}
	inv := NewInventory(f, Sources{Models: "m", Relations: "r", Errors: "e"})
	require.NoError(t, inv.Load(context.Background()))

	select {
	case <-inv.Ready():
	default:
		t.Fatal("inventory not ready after Load")
	}
	assert.Empty(t, inv.Routers())
	assert.Equal(t, []string{"hostname"}, inv.FieldErrors("c2"))

	errs := inv.Errors()
	errs["c2"][0] = "changed"
	assert.Equal(t, []string{"hostname"}, inv.FieldErrors("C2"))
}

func TestInventoryLoadCancelled(t *testing.T) {
	inv := NewInventory(fakeFetcher{}, Sources{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, inv.Load(ctx), context.Canceled)
}

func TestInventoryLoadKeepsValidModels(t *testing.T) {
	f := fakeFetcher{
		"m": `[{"id": "c1", "className": "Config", "name": "cf3"}, {"id": "h1", "name": "note"}, {"className": "Config", "name": "cf4"}]`,
		"r": `[{"kanren": [{"Config": "c1"}]}]`,
		"e": `[]`,
	}
	inv := NewInventory(f, Sources{Models: "m", Relations: "r", Errors: "e"})
	require.NoError(t, inv.Load(context.Background()))

	assert.Equal(t, []string{"cf3"}, inv.Routers())
}

func TestInventoryReloadKeepsTablesOnFailure(t *testing.T) {
	f := fakeFetcher{"m": modelsDoc, "r": relationsDoc, "e": errorsDoc}
	inv := NewInventory(f, Sources{Models: "m", Relations: "r", Errors: "e"})
	require.NoError(t, inv.Load(context.Background()))
	require.Equal(t, []string{"cf1", "cf2"}, inv.Routers())

	delete(f, "r")
	delete(f, "e")
	require.NoError(t, inv.Load(context.Background()))

	assert.Equal(t, []string{"cf1", "cf2"}, inv.Routers())
	assert.Equal(t, []string{"hostname"}, inv.FieldErrors("c2"))
}
