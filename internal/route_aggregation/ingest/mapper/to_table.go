package mapper

import (
	"sort"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/netroute-lab/routeview/internal/route_aggregation/ingest/parser"
)

// ToTable builds the route table for one category. Routes without an icmp
// path are skipped. Keys that collide after normalization resolve to the
// lexically last raw key.
func ToTable(category domain.Category, d *parser.RouteDocument) *domain.RouteTable {
	routes := d.Routes()
	raw := make([]string, 0, len(routes))
	for key := range routes {
		raw = append(raw, key)
	}
	sort.Strings(raw)

	entries := make([]domain.RouteEntry, 0, len(routes))
	for _, key := range raw {
		r := routes[key]
		if len(r.ICMP) == 0 {
			continue
		}
		path := make([]string, 0, len(r.ICMP))
		for _, n := range r.ICMP {
			path = append(path, domain.NormalizeName(n))
		}
		entries = append(entries, domain.RouteEntry{
			Key:  domain.NormalizeName(key),
			Path: path,
		})
	}
	return domain.NewRouteTable(category, entries)
}
