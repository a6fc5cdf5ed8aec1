package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netroute-lab/routeview/internal/canvas/domain"
	"github.com/netroute-lab/routeview/internal/logging"
	rdomain "github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	rservice "github.com/netroute-lab/routeview/internal/route_aggregation/service"
)

type SessionStore interface {
	Save(ctx context.Context, c *domain.Canvas) error
	Get(ctx context.Context, id string) (*domain.Canvas, error)
	Delete(ctx context.Context, id string) error
}

type VersionStore interface {
	CreateVersion(ctx context.Context, c *domain.Canvas) (*domain.Version, error)
	Latest(ctx context.Context, sessionID string) (*domain.Version, error)
}

type RouteEngine interface {
	WaitReady(ctx context.Context) error
	Recompute(ctx context.Context, selection rdomain.SelectionSet, nodes []rdomain.NodeRef) (*rservice.Result, error)
}

// memoOffset places a new memo above the router it annotates.
const memoOffset = 150.0

type CanvasService struct {
	sessions SessionStore
	versions VersionStore
	routes   RouteEngine
	now      func() time.Time

	// serializes read-modify-write of sessions
	mu sync.Mutex
}

// NewCanvasService wires the stores; versions may be nil when no database is
// configured.
func NewCanvasService(sessions SessionStore, versions VersionStore, routes RouteEngine) *CanvasService {
	return &CanvasService{
		sessions: sessions,
		versions: versions,
		routes:   routes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CanvasService) Create(ctx context.Context) (*domain.Canvas, error) {
	c := domain.NewCanvas(uuid.NewString(), s.now())
	if err := s.sessions.Save(ctx, c); err != nil {
		return nil, err
	}
	logging.NewLogger(ctx).LogInfof("create_canvas", "canvas_id=%s", c.ID)
	return c, nil
}

func (s *CanvasService) Get(ctx context.Context, id string) (*domain.Canvas, error) {
	return s.sessions.Get(ctx, id)
}

// Delete drops the editing session. Saved versions are kept.
func (s *CanvasService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	logging.NewLogger(ctx).LogInfof("delete_canvas", "canvas_id=%s", id)
	return nil
}

// ApplyRoutes recomputes the generated links for selection. When the
// recompute fails the stored canvas is left untouched.
func (s *CanvasService) ApplyRoutes(ctx context.Context, id string, selection rdomain.SelectionSet) (*domain.Canvas, *rservice.Result, error) {
	logger := logging.NewLogger(ctx)

	if err := s.routes.WaitReady(ctx); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	nodes := c.NodeRefs()
	res, err := s.routes.Recompute(ctx, selection, nodes)
	if err != nil {
		logger.LogError("apply_routes", err)
		return nil, nil, fmt.Errorf("recompute routes: %w", err)
	}

	c.Links = rservice.ReplaceGenerated(c.Links, nodes, res.Links)
	c.Selection = copySelection(selection)
	c.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, c); err != nil {
		return nil, nil, err
	}

	logger.LogInfof("apply_routes", "canvas_id=%s selected=%d links=%d", id, len(selection.Selected()), len(res.Links))
	return c, res, nil
}

// AddMemo attaches a memo node to the named router with an annotation link
// that survives route recomputes.
func (s *CanvasService) AddMemo(ctx context.Context, id, routerName, title string) (*domain.Canvas, *domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	router, ok := c.RouterByName(routerName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: router %q", domain.ErrNodeNotFound, routerName)
	}

	c.MemoCount++
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("memo %d", c.MemoCount)
	}
	memo := domain.NewMemoNode("memo-"+uuid.NewString(), title, router.Position.X, router.Position.Y-memoOffset)
	routerID := router.ID

	c.Nodes = append(c.Nodes, memo)
	c.Links = append(c.Links, rdomain.LinkDescriptor{
		ID:         "memo:" + memo.ID,
		Source:     memo.ID,
		Target:     routerID,
		SourcePort: rdomain.PortBottom,
		TargetPort: rdomain.PortTop,
		Width:      rservice.MinThickness,
	})
	c.UpdatedAt = s.now()

	if err := s.sessions.Save(ctx, c); err != nil {
		return nil, nil, err
	}
	return c, &memo, nil
}

func (s *CanvasService) UpdateInputs(ctx context.Context, id, nodeID string, in domain.Inputs) (*domain.Canvas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	n, ok := c.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, nodeID)
	}
	n.Inputs = domain.Inputs{
		DeviceModel: strings.TrimSpace(in.DeviceModel),
		Hostname:    strings.TrimSpace(in.Hostname),
	}
	c.UpdatedAt = s.now()

	if err := s.sessions.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CanvasService) SaveVersion(ctx context.Context, id string) (*domain.Version, error) {
	if s.versions == nil {
		return nil, fmt.Errorf("version %w", domain.ErrNotConfigured)
	}
	c, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.versions.CreateVersion(ctx, c)
}

func (s *CanvasService) LatestVersion(ctx context.Context, id string) (*domain.Version, error) {
	if s.versions == nil {
		return nil, fmt.Errorf("version %w", domain.ErrNotConfigured)
	}
	return s.versions.Latest(ctx, id)
}

func copySelection(in rdomain.SelectionSet) rdomain.SelectionSet {
	out := make(rdomain.SelectionSet, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
