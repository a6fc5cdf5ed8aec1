package service

import (
	"context"
	"strconv"

	"github.com/netroute-lab/routeview/internal/logging"
	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

// NodeIndex resolves display names to canvas nodes, case-insensitively.
// When two nodes share a name the later one wins.
type NodeIndex map[string]domain.NodeRef

func NewNodeIndex(nodes []domain.NodeRef) NodeIndex {
	idx := make(NodeIndex, len(nodes))
	for _, n := range nodes {
		if name := domain.NormalizeName(n.Name); name != "" {
			idx[name] = n
		}
	}
	return idx
}

// Materialize emits one link per non-zero (pair, category). Pairs whose
// endpoints are not on the canvas are skipped. Blue links come first, each
// category sorted by pair key.
func Materialize(ctx context.Context, counts domain.SegmentCount, scale ThicknessScale, nodes NodeIndex) []domain.LinkDescriptor {
	logger := logging.NewLogger(ctx)
	links := []domain.LinkDescriptor{}
	keys := counts.Keys()

	for _, c := range domain.Categories {
		for _, pair := range keys {
			n := counts[pair].Get(c)
			if n <= 0 {
				continue
			}
			a, b, ok := domain.SplitPair(pair)
			if !ok {
				logger.LogWarnf("materialize_links", "bad pair key=%q", pair)
				continue
			}
			src, okA := nodes[a]
			dst, okB := nodes[b]
			if !okA || !okB {
				logger.LogWarnf("materialize_links", "unresolved endpoint pair=%s category=%s", pair, c)
				continue
			}
			links = append(links, domain.LinkDescriptor{
				ID:         string(c) + ":" + pair,
				Source:     src.ID,
				Target:     dst.ID,
				SourcePort: c.Port(),
				TargetPort: c.Port(),
				Category:   c,
				Color:      c.Color(),
				Width:      scale.Width(n),
				Label:      strconv.Itoa(n),
				Count:      n,
			})
		}
	}
	return links
}

// IsAnnotationLink reports whether l joins a memo node to a router node, in
// either direction.
func IsAnnotationLink(l domain.LinkDescriptor, kinds map[string]domain.NodeKind) bool {
	s, t := kinds[l.Source], kinds[l.Target]
	return (s == domain.NodeMemo && t == domain.NodeRouter) ||
		(s == domain.NodeRouter && t == domain.NodeMemo)
}

// ReplaceGenerated drops every existing link except memo-router annotations
// and appends fresh.
func ReplaceGenerated(existing []domain.LinkDescriptor, nodes []domain.NodeRef, fresh []domain.LinkDescriptor) []domain.LinkDescriptor {
	kinds := make(map[string]domain.NodeKind, len(nodes))
	for _, n := range nodes {
		kinds[n.ID] = n.Kind
	}
	out := make([]domain.LinkDescriptor, 0, len(fresh)+len(existing))
	for _, l := range existing {
		if IsAnnotationLink(l, kinds) {
			out = append(out, l)
		}
	}
	return append(out, fresh...)
}
