package domain

import "sort"

// RouteEntry is one stored path, endpoints included.
type RouteEntry struct {
	Key  string   `json:"key" yaml:"key"`
	Path []string `json:"path" yaml:"path"`
}

// RouteTable maps a normalized route key to its path. It is never mutated
// after NewRouteTable returns.
type RouteTable struct {
	category Category
	routes   map[string]RouteEntry
}

func NewRouteTable(category Category, entries []RouteEntry) *RouteTable {
	t := &RouteTable{
		category: category,
		routes:   make(map[string]RouteEntry, len(entries)),
	}
	for _, e := range entries {
		path := make([]string, len(e.Path))
		copy(path, e.Path)
		t.routes[e.Key] = RouteEntry{Key: e.Key, Path: path}
	}
	return t
}

// EmptyTable is what a category holds when its document could not be loaded.
func EmptyTable(category Category) *RouteTable {
	return NewRouteTable(category, nil)
}

func (t *RouteTable) Category() Category {
	if t == nil {
		return ""
	}
	return t.category
}

// Lookup returns a copy of the path stored under key.
func (t *RouteTable) Lookup(key string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	e, ok := t.routes[key]
	if !ok {
		return nil, false
	}
	out := make([]string, len(e.Path))
	copy(out, e.Path)
	return out, true
}

func (t *RouteTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}

func (t *RouteTable) Keys() []string {
	if t == nil {
		return []string{}
	}
	keys := make([]string, 0, len(t.routes))
	for k := range t.routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SelectionSet maps a display route id ("cf3-cf9") to its selected flag.
type SelectionSet map[string]bool

// Selected returns the selected route ids in sorted order.
func (s SelectionSet) Selected() []string {
	out := []string{}
	for k, v := range s {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

type Tally struct {
	Blue int `json:"blue" yaml:"blue"`
	Red  int `json:"red" yaml:"red"`
}

func (t Tally) Get(c Category) int {
	if c == CategoryRed {
		return t.Red
	}
	return t.Blue
}

func (t *Tally) Add(c Category, n int) {
	if c == CategoryRed {
		t.Red += n
		return
	}
	t.Blue += n
}

// SegmentCount maps an adjacency pair key ("cf3-cf4") to its per-category tally.
type SegmentCount map[string]Tally

func (s SegmentCount) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge folds a single-category pair count into s.
func (s SegmentCount) Merge(c Category, counts map[string]int) {
	for pair, n := range counts {
		t := s[pair]
		t.Add(c, n)
		s[pair] = t
	}
}

type NodeKind string

const (
	NodeRouter NodeKind = "router"
	NodeMemo   NodeKind = "memo"
)

// NodeRef is the renderer's handle for a node on the canvas.
type NodeRef struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Kind NodeKind `json:"kind"`
}

// LinkDescriptor is what the renderer draws. Annotation links (memo to
// router) carry an empty Category.
type LinkDescriptor struct {
	ID         string        `json:"id" yaml:"id"`
	Source     string        `json:"source" yaml:"source"`
	Target     string        `json:"target" yaml:"target"`
	SourcePort PortAlignment `json:"source_port" yaml:"source_port"`
	TargetPort PortAlignment `json:"target_port" yaml:"target_port"`
	Category   Category      `json:"category,omitempty" yaml:"category,omitempty"`
	Color      string        `json:"color,omitempty" yaml:"color,omitempty"`
	Width      float64       `json:"width" yaml:"width"`
	Label      string        `json:"label,omitempty" yaml:"label,omitempty"`
	Count      int           `json:"count,omitempty" yaml:"count,omitempty"`
}
