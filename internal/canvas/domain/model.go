package domain

import (
	"errors"
	"time"

	rdomain "github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

var (
	ErrSessionNotFound = errors.New("canvas session not found")
	ErrNodeNotFound    = errors.New("canvas node not found")
	ErrVersionNotFound = errors.New("canvas version not found")
	ErrPresetNotFound  = errors.New("route preset not found")
	ErrNotConfigured   = errors.New("store not configured")
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Style struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Border          string `json:"border,omitempty"`
}

// Inputs are the editable device fields shown on router and memo nodes.
type Inputs struct {
	DeviceModel string `json:"DeviceModel"`
	Hostname    string `json:"Hostname"`
}

type Node struct {
	ID       string                  `json:"id"`
	Kind     rdomain.NodeKind        `json:"kind"`
	Name     string                  `json:"name,omitempty"`
	Title    string                  `json:"title,omitempty"`
	Position Position                `json:"position"`
	Style    *Style                  `json:"style,omitempty"`
	Ports    []rdomain.PortAlignment `json:"ports"`
	Inputs   Inputs                  `json:"inputs"`
}

// Canvas is the serialized diagram kept per editor session.
type Canvas struct {
	ID        string                   `json:"id"`
	GridSize  int                      `json:"grid_size"`
	Nodes     []Node                   `json:"nodes"`
	Links     []rdomain.LinkDescriptor `json:"links"`
	Selection rdomain.SelectionSet     `json:"selection"`
	MemoCount int                      `json:"memo_count"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (c *Canvas) NodeRefs() []rdomain.NodeRef {
	out := make([]rdomain.NodeRef, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		out = append(out, rdomain.NodeRef{ID: n.ID, Name: n.Name, Kind: n.Kind})
	}
	return out
}

func (c *Canvas) Node(id string) (*Node, bool) {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i], true
		}
	}
	return nil, false
}

// RouterByName finds a router node by display name, case-insensitively.
func (c *Canvas) RouterByName(name string) (*Node, bool) {
	name = rdomain.NormalizeName(name)
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if n.Kind == rdomain.NodeRouter && rdomain.NormalizeName(n.Name) == name {
			return n, true
		}
	}
	return nil, false
}

// Version is a numbered snapshot of a canvas.
type Version struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	VersionNumber int       `json:"version_number"`
	Canvas        *Canvas   `json:"canvas"`
	CreatedAt     time.Time `json:"created_at"`
}

// Preset is a named, reusable route selection.
type Preset struct {
	Name      string               `json:"name"`
	Selection rdomain.SelectionSet `json:"selection"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
