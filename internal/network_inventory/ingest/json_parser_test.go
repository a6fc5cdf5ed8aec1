package ingest

import (
	"errors"
	"testing"

	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelsBytes(t *testing.T) {
	models, err := ParseModelsBytes([]byte(`[
		{"id": "C1", "className": "Config", "name": "cf1", "vendor": "acme", "ports": 4},
		{"id": "I1", "className": "Interface", "ipAddress": "10.0.0.1"}
	]`))
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "cf1", models[0].Name)
	assert.Equal(t, "acme", models[0].Attrs["vendor"])
	assert.Equal(t, float64(4), models[0].Attrs["ports"])
	assert.NotContains(t, models[0].Attrs, "id")
	assert.Equal(t, "10.0.0.1", models[1].Attrs["ipAddress"])
}

func TestParseModelsBytesDropsBadEntries(t *testing.T) {
	models, err := ParseModelsBytes([]byte(`[
		{"id": "c1", "className": "Config", "name": "cf3"},
		{"id": "h1", "name": "note"},
		{"className": "Config", "name": "cf4"},
		{"id": 7, "className": "Config"},
		"stray"
	]`))
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "c1", models[0].ID)
	assert.Equal(t, "h1", models[1].ID)
	assert.Empty(t, models[1].ClassName)
}

func TestParseModelsBytesInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":     `{`,
		"not an array": `{"id": "x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseModelsBytes([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedDocument))
		})
	}
}

func TestParseRelationsBytes(t *testing.T) {
	rels, err := ParseRelationsBytes([]byte(`[
		{"kanren": [{"Config": "C1"}], "Interface": "I1", "weight": 3}
	]`))
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, []map[string]string{{"Config": "C1"}}, rels[0].Kanren)
	assert.Equal(t, map[string]string{"Interface": "I1"}, rels[0].Refs)

	_, err = ParseRelationsBytes([]byte(`[{"kanren": "nope"}]`))
	assert.True(t, errors.Is(err, domain.ErrMalformedDocument))
}

func TestParseErrorListBytes(t *testing.T) {
	entries, err := ParseErrorListBytes([]byte(`[{"instances": {"I1": "ipAddress"}}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ipAddress", entries[0].Instances["I1"])

	_, err = ParseErrorListBytes([]byte(`[{"instances": [1]}]`))
	assert.True(t, errors.Is(err, domain.ErrMalformedDocument))
}
