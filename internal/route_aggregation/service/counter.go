package service

import "github.com/netroute-lab/routeview/internal/route_aggregation/domain"

// CountSegments walks the stored route(s) between two display-named nodes and
// counts every adjacent pair of display nodes on the interior of the path.
// Both key orientations are probed and their counts are added together.
func CountSegments(start, end string, table *domain.RouteTable) map[string]int {
	counts := map[string]int{}

	clStart := domain.ToStorage(start)
	clEnd := domain.ToStorage(end)

	// a self route probes the same key twice and counts twice
	for _, key := range []string{domain.PairKey(clStart, clEnd), domain.PairKey(clEnd, clStart)} {
		path, ok := table.Lookup(key)
		if !ok || len(path) < 3 {
			continue
		}
		chain := displayChain(path[1 : len(path)-1])
		for i := 0; i+1 < len(chain); i++ {
			counts[domain.PairKey(chain[i], chain[i+1])]++
		}
	}
	return counts
}

func displayChain(interior []string) []string {
	out := make([]string, 0, len(interior))
	for _, n := range interior {
		n = domain.NormalizeName(n)
		if domain.IsDisplayName(n) {
			out = append(out, n)
		}
	}
	return out
}

// CountSelection merges the segment counts of every selected route across
// the given tables. Malformed selection keys are returned in skipped.
func CountSelection(selection domain.SelectionSet, tables map[domain.Category]*domain.RouteTable) (counts domain.SegmentCount, skipped []string) {
	counts = domain.SegmentCount{}
	skipped = []string{}
	for _, routeID := range selection.Selected() {
		start, end, ok := domain.SplitPair(routeID)
		if !ok {
			skipped = append(skipped, routeID)
			continue
		}
		for _, c := range domain.Categories {
			counts.Merge(c, CountSegments(start, end, tables[c]))
		}
	}
	return counts, skipped
}
