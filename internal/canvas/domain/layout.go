package domain

import (
	"time"

	rdomain "github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

const GridSize = 50

type LayoutItem struct {
	Name string
	X, Y float64
}

// DefaultLayout places the nine routers on a 3x3 grid.
var DefaultLayout = []LayoutItem{
	{Name: "cf3", X: 50, Y: 225},
	{Name: "cf2", X: 350, Y: 225},
	{Name: "cf9", X: 650, Y: 225},
	{Name: "cf4", X: 50, Y: 425},
	{Name: "cf1", X: 350, Y: 25},
	{Name: "cf8", X: 650, Y: 425},
	{Name: "cf5", X: 50, Y: 625},
	{Name: "cf6", X: 350, Y: 625},
	{Name: "cf7", X: 650, Y: 625},
}

// highlighted routers are drawn with the red warning style.
var highlighted = map[string]bool{"cf3": true, "cf4": true}

var warningStyle = Style{
	BackgroundColor: "rgba(255, 0, 0, 0.3)",
	Border:          "2px solid red",
}

var routerPorts = []rdomain.PortAlignment{rdomain.PortTop, rdomain.PortLeft, rdomain.PortBottom, rdomain.PortRight}

func NewRouterNode(name string, x, y float64) Node {
	n := Node{
		ID:       "router-" + rdomain.NormalizeName(name),
		Kind:     rdomain.NodeRouter,
		Name:     name,
		Position: Position{X: x, Y: y},
		Ports:    append([]rdomain.PortAlignment(nil), routerPorts...),
	}
	if highlighted[rdomain.NormalizeName(name)] {
		s := warningStyle
		n.Style = &s
	}
	return n
}

func NewMemoNode(id, title string, x, y float64) Node {
	return Node{
		ID:       id,
		Kind:     rdomain.NodeMemo,
		Title:    title,
		Position: Position{X: x, Y: y},
		Ports:    []rdomain.PortAlignment{rdomain.PortBottom},
	}
}

// NewCanvas returns a canvas holding the default router layout and no links.
func NewCanvas(id string, now time.Time) *Canvas {
	c := &Canvas{
		ID:        id,
		GridSize:  GridSize,
		Nodes:     make([]Node, 0, len(DefaultLayout)),
		Links:     []rdomain.LinkDescriptor{},
		Selection: rdomain.SelectionSet{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range DefaultLayout {
		c.Nodes = append(c.Nodes, NewRouterNode(item.Name, item.X, item.Y))
	}
	return c
}

// DefaultNodeRefs are the node handles of a fresh canvas.
func DefaultNodeRefs() []rdomain.NodeRef {
	return NewCanvas("", time.Time{}).NodeRefs()
}
