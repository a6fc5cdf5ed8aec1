package main

import (
	"context"
	"log"

	canvasdomain "github.com/netroute-lab/routeview/internal/canvas/domain"
	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/netroute-lab/routeview/internal/route_aggregation/service"
	"github.com/netroute-lab/routeview/internal/route_aggregation/source"
)

// recompute loads both route files and runs the pipeline against the default
// router layout.
func recompute(bluePath, redPath string, routes []string) (*service.Result, []domain.NodeRef, error) {
	ctx := context.Background()

	reg := service.NewRegistry(source.NewClient(source.Options{}), service.Sources{
		domain.CategoryBlue: bluePath,
		domain.CategoryRed:  redPath,
	})
	if err := reg.Load(ctx); err != nil {
		return nil, nil, err
	}
	for c, msg := range reg.Snapshot().Errors {
		log.Printf("[warn] category=%s load failed: %s", c, msg)
	}

	selection := domain.SelectionSet{}
	for _, r := range routes {
		selection[r] = true
	}

	nodes := canvasdomain.DefaultNodeRefs()
	res, err := reg.Recompute(ctx, selection, nodes)
	if err != nil {
		return nil, nil, err
	}
	return res, nodes, nil
}
