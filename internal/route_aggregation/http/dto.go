package http

import "github.com/netroute-lab/routeview/internal/route_aggregation/domain"

type selectionReq struct {
	Selection domain.SelectionSet `json:"selection"`
	// Nodes lists display names to place on the canvas; empty means the
	// default router layout.
	Nodes []string `json:"nodes,omitempty"`
}

type tableView struct {
	Category domain.Category `json:"category"`
	Size     int             `json:"size"`
	Keys     []string        `json:"keys"`
	Error    string          `json:"error,omitempty"`
}
