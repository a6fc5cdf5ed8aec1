package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/netroute-lab/routeview/internal/route_aggregation/graph/export"
)

// RunDOT writes routes.dot, links.json and links.yaml into outDir. When
// DOT_BIN is set the DOT file is also rendered to routes.svg.
func RunDOT(args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: dot <blue.yaml> <red.yaml> <outDir> <cfA-cfB>...")
	}
	outDir := args[2]
	res, nodes, err := recompute(args[0], args[1], args[3:])
	if err != nil {
		return err
	}

	if err := export.WriteBundle(outDir, "Routes", nodes, res.Links, res); err != nil {
		return err
	}
	dotPath := filepath.Join(outDir, export.DOTFile)
	fmt.Printf("Wrote: %s (%d links)\n", dotPath, len(res.Links))

	if bin := os.Getenv("DOT_BIN"); bin != "" {
		svgPath := filepath.Join(outDir, "routes.svg")
		if err := export.Render(context.Background(), bin, dotPath, svgPath); err != nil {
			return fmt.Errorf("graphviz render: %w", err)
		}
		fmt.Printf("Wrote: %s\n", svgPath)
	}
	return nil
}
