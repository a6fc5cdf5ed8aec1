package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/netroute-lab/routeview/internal/logging"
	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
	"github.com/netroute-lab/routeview/internal/network_inventory/ingest"
	"github.com/netroute-lab/routeview/internal/route_aggregation/source"
)

type Sources struct {
	Models    string
	Relations string
	Errors    string
}

type state struct {
	routers map[string][]domain.ModelObject
	errors  domain.ErrorTable
}

// Inventory holds the router info and error tables shown in the drawer.
type Inventory struct {
	fetcher source.Fetcher
	sources Sources

	current   atomic.Pointer[state]
	ready     chan struct{}
	readyOnce sync.Once
}

func NewInventory(fetcher source.Fetcher, sources Sources) *Inventory {
	inv := &Inventory{fetcher: fetcher, sources: sources, ready: make(chan struct{})}
	inv.current.Store(&state{routers: map[string][]domain.ModelObject{}, errors: domain.ErrorTable{}})
	return inv
}

// NewStaticInventory builds a ready inventory from already parsed documents.
func NewStaticInventory(models []domain.ModelObject, relations []domain.Relation, errs []domain.ErrorEntry) *Inventory {
	inv := NewInventory(nil, Sources{})
	inv.current.Store(&state{
		routers: BuildRouterInfo(models, relations),
		errors:  BuildErrorTable(errs),
	})
	inv.readyOnce.Do(func() { close(inv.ready) })
	return inv
}

// Load fetches the three documents concurrently. The router table needs both
// the model and relation documents; if either fails it stays empty on the
// first load and keeps its previous contents on a reload. The error table is
// independent.
func (inv *Inventory) Load(ctx context.Context) error {
	logger := logging.NewLogger(ctx)

	var (
		models    []domain.ModelObject
		relations []domain.Relation
		entries   []domain.ErrorEntry
		modelsErr error
		relErr    error
		errsErr   error
	)

	var g errgroup.Group
	g.Go(func() error {
		models, modelsErr = fetchParse(ctx, inv.fetcher, inv.sources.Models, ingest.ParseModelsBytes)
		return nil
	})
	g.Go(func() error {
		relations, relErr = fetchParse(ctx, inv.fetcher, inv.sources.Relations, ingest.ParseRelationsBytes)
		return nil
	})
	g.Go(func() error {
		entries, errsErr = fetchParse(ctx, inv.fetcher, inv.sources.Errors, ingest.ParseErrorListBytes)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	st := &state{routers: map[string][]domain.ModelObject{}, errors: domain.ErrorTable{}}
	var prev *state
	select {
	case <-inv.ready:
		prev = inv.current.Load()
	default:
	}

	if routerErr := errors.Join(modelsErr, relErr); routerErr != nil {
		logger.LogError("load_router_info", routerErr)
		if prev != nil {
			st.routers = prev.routers
		}
	} else {
		st.routers = BuildRouterInfo(models, relations)
	}
	if errsErr != nil {
		logger.LogError("load_error_info", errsErr)
		if prev != nil {
			st.errors = prev.errors
		}
	} else {
		st.errors = BuildErrorTable(entries)
	}

	inv.current.Store(st)
	logger.LogInfof("load_inventory", "routers=%d error_ids=%d", len(st.routers), len(st.errors))
	inv.readyOnce.Do(func() { close(inv.ready) })
	return nil
}

func fetchParse[T any](ctx context.Context, f source.Fetcher, location string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	if location == "" {
		return zero, fmt.Errorf("no source configured")
	}
	if f == nil {
		return zero, fmt.Errorf("no fetcher configured")
	}
	b, err := f.Fetch(ctx, location)
	if err != nil {
		return zero, fmt.Errorf("fetch %s: %w", location, err)
	}
	return parse(b)
}

func (inv *Inventory) Ready() <-chan struct{} {
	return inv.ready
}

func (inv *Inventory) Routers() []string {
	st := inv.current.Load()
	out := make([]string, 0, len(st.routers))
	for r := range st.routers {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

func (inv *Inventory) RouterDetail(name string) (domain.RouterDetail, error) {
	st := inv.current.Load()
	objects, ok := st.routers[normalize(name)]
	if !ok {
		return domain.RouterDetail{}, fmt.Errorf("%w: %q", domain.ErrRouterNotFound, name)
	}
	return Detail(name, objects, st.errors), nil
}

// Errors returns a copy of the error table.
func (inv *Inventory) Errors() domain.ErrorTable {
	st := inv.current.Load()
	out := make(domain.ErrorTable, len(st.errors))
	for k, v := range st.errors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// FieldErrors lists the failing fields of one object id.
func (inv *Inventory) FieldErrors(objectID string) []string {
	st := inv.current.Load()
	return append([]string{}, st.errors[normalize(objectID)]...)
}
