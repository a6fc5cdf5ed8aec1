package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netroute-lab/routeview/internal/logging"
	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/netroute-lab/routeview/internal/route_aggregation/ingest/mapper"
	"github.com/netroute-lab/routeview/internal/route_aggregation/ingest/parser"
	"github.com/netroute-lab/routeview/internal/route_aggregation/source"
)

// Sources names the document location of each category.
type Sources map[domain.Category]string

// Snapshot is an immutable view of the loaded route tables.
type Snapshot struct {
	Tables   map[domain.Category]*domain.RouteTable
	Errors   map[domain.Category]string
	LoadedAt time.Time
}

func emptySnapshot() *Snapshot {
	tables := map[domain.Category]*domain.RouteTable{}
	for _, c := range domain.Categories {
		tables[c] = domain.EmptyTable(c)
	}
	return &Snapshot{Tables: tables, Errors: map[domain.Category]string{}}
}

// Registry owns the process-wide route tables. Load fills them once and
// closes the Ready channel; later Loads swap in a fresh snapshot.
type Registry struct {
	fetcher source.Fetcher
	sources Sources

	current   atomic.Pointer[Snapshot]
	ready     chan struct{}
	readyOnce sync.Once
	loadMu    sync.Mutex
}

func NewRegistry(fetcher source.Fetcher, sources Sources) *Registry {
	r := &Registry{
		fetcher: fetcher,
		sources: sources,
		ready:   make(chan struct{}),
	}
	r.current.Store(emptySnapshot())
	return r
}

// NewStaticRegistry returns a registry that is already ready with the given
// tables. Missing categories get empty tables.
func NewStaticRegistry(tables ...*domain.RouteTable) *Registry {
	r := NewRegistry(nil, nil)
	snap := emptySnapshot()
	for _, t := range tables {
		if t != nil {
			snap.Tables[t.Category()] = t
		}
	}
	snap.LoadedAt = time.Now().UTC()
	r.current.Store(snap)
	r.markReady()
	return r
}

// Load fetches and builds every category concurrently. On the first load a
// category whose document fails ends up with an empty table; on reloads it
// keeps the table it already had. Load itself only fails when ctx is
// cancelled.
func (r *Registry) Load(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	logger := logging.NewLogger(ctx)
	snap := emptySnapshot()
	var prev *Snapshot
	if r.IsReady() {
		prev = r.current.Load()
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range domain.Categories {
		g.Go(func() error {
			t, err := r.loadCategory(ctx, c)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.LogErrorf("load_routes", "category=%s error=%v", c, err)
				snap.Errors[c] = err.Error()
				if prev != nil && prev.Tables[c] != nil {
					snap.Tables[c] = prev.Tables[c]
				}
				return nil
			}
			snap.Tables[c] = t
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap.LoadedAt = time.Now().UTC()
	r.current.Store(snap)
	for _, c := range domain.Categories {
		RouteTableSize.WithLabelValues(string(c)).Set(float64(snap.Tables[c].Len()))
	}
	logger.LogInfof("load_routes", "blue=%d red=%d", snap.Tables[domain.CategoryBlue].Len(), snap.Tables[domain.CategoryRed].Len())

	r.markReady()
	return nil
}

func (r *Registry) loadCategory(ctx context.Context, c domain.Category) (*domain.RouteTable, error) {
	location := r.sources[c]
	if location == "" {
		return nil, fmt.Errorf("no source configured for category %s", c)
	}
	if r.fetcher == nil {
		return nil, errors.New("no fetcher configured")
	}
	b, err := r.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	doc, err := parser.ParseRouteYAMLBytes(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}
	return mapper.ToTable(c, doc), nil
}

func (r *Registry) markReady() {
	r.readyOnce.Do(func() { close(r.ready) })
}

// Ready is closed once the first Load has finished.
func (r *Registry) Ready() <-chan struct{} {
	return r.ready
}

func (r *Registry) IsReady() bool {
	select {
	case <-r.ready:
		return true
	default:
		return false
	}
}

func (r *Registry) WaitReady(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrRoutesNotReady, ctx.Err())
	}
}

func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

func (r *Registry) Table(c domain.Category) (*domain.RouteTable, error) {
	cat, err := domain.ParseCategory(string(c))
	if err != nil {
		return nil, err
	}
	return r.Snapshot().Tables[cat], nil
}

// Recompute runs the pipeline against the current snapshot.
func (r *Registry) Recompute(ctx context.Context, selection domain.SelectionSet, nodes []domain.NodeRef) (*Result, error) {
	if !r.IsReady() {
		return nil, domain.ErrRoutesNotReady
	}
	return Recompute(ctx, r.Snapshot(), selection, nodes)
}
