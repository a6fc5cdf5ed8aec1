package service

import (
	"context"
	"fmt"

	"github.com/netroute-lab/routeview/internal/logging"
	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

type Result struct {
	Counts  domain.SegmentCount     `json:"counts" yaml:"counts"`
	Scale   ThicknessScale          `json:"scale" yaml:"scale"`
	Links   []domain.LinkDescriptor `json:"links" yaml:"links"`
	Skipped []string                `json:"skipped" yaml:"skipped"`
}

// Recompute runs count, scale and materialize from scratch. Nothing is
// cached between calls, so the same inputs always give the same result.
func Recompute(ctx context.Context, snap *Snapshot, selection domain.SelectionSet, nodes []domain.NodeRef) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = nil
			err = fmt.Errorf("recompute panicked: %v", rec)
		}
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		RecomputeTotal.WithLabelValues(outcome).Inc()
	}()

	if snap == nil {
		return nil, domain.ErrRoutesNotReady
	}

	counts, skipped := CountSelection(selection, snap.Tables)
	if len(skipped) > 0 {
		logger := logging.NewLogger(ctx)
		for _, key := range skipped {
			logger.LogWarnf("recompute", "%v: %q", domain.ErrInvalidSelection, key)
		}
	}
	scale := NewThicknessScale(counts)
	links := Materialize(ctx, counts, scale, NewNodeIndex(nodes))
	GeneratedLinks.Set(float64(len(links)))

	return &Result{
		Counts:  counts,
		Scale:   scale,
		Links:   links,
		Skipped: skipped,
	}, nil
}
