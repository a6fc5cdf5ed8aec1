package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"github.com/netroute-lab/routeview/internal/route_aggregation/service"
)

type Handler struct {
	registry *service.Registry
	// defaultNodes are used by /links when the request names none.
	defaultNodes []domain.NodeRef
}

func New(registry *service.Registry, defaultNodes []domain.NodeRef) *Handler {
	return &Handler{registry: registry, defaultNodes: defaultNodes}
}

// ensureReady blocks until the route tables are loaded, unless the caller
// passed wait=false.
func (h *Handler) ensureReady(c *gin.Context) bool {
	var err error
	if c.Query("wait") == "false" {
		if !h.registry.IsReady() {
			err = domain.ErrRoutesNotReady
		}
	} else {
		err = h.registry.WaitReady(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "routes not ready"})
		return false
	}
	return true
}

func (h *Handler) tables(c *gin.Context) {
	if !h.ensureReady(c) {
		return
	}
	snap := h.registry.Snapshot()
	out := make([]tableView, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		t := snap.Tables[cat]
		out = append(out, tableView{Category: cat, Size: t.Len(), Keys: t.Keys(), Error: snap.Errors[cat]})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "loaded_at": snap.LoadedAt, "tables": out})
}

func (h *Handler) route(c *gin.Context) {
	cat, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !h.ensureReady(c) {
		return
	}
	t, _ := h.registry.Table(cat)
	path, ok := t.Lookup(domain.NormalizeName(c.Param("key")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "route not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "category": cat, "path": path})
}

func (h *Handler) segments(c *gin.Context) {
	var req selectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !h.ensureReady(c) {
		return
	}
	counts, skipped := service.CountSelection(req.Selection, h.registry.Snapshot().Tables)
	c.JSON(http.StatusOK, gin.H{"ok": true, "counts": counts, "skipped": skipped})
}

func (h *Handler) links(c *gin.Context) {
	var req selectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !h.ensureReady(c) {
		return
	}

	nodes := h.defaultNodes
	if len(req.Nodes) > 0 {
		nodes = make([]domain.NodeRef, 0, len(req.Nodes))
		for _, n := range req.Nodes {
			name := domain.NormalizeName(n)
			nodes = append(nodes, domain.NodeRef{ID: name, Name: name, Kind: domain.NodeRouter})
		}
	}

	res, err := h.registry.Recompute(c.Request.Context(), req.Selection, nodes)
	if err != nil {
		if errors.Is(err, domain.ErrRoutesNotReady) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "routes not ready"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": res})
}
