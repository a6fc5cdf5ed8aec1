package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netroute-lab/routeview/internal/canvas/domain"
	"github.com/netroute-lab/routeview/internal/canvas/service"
	rdomain "github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

type Handler struct {
	svc     *service.CanvasService
	presets PresetStore
}

// New builds the canvas handlers; presets may be nil when no database is
// configured.
func New(svc *service.CanvasService, presets PresetStore) *Handler {
	return &Handler{svc: svc, presets: presets}
}

func (h *Handler) create(c *gin.Context) {
	cv, err := h.svc.Create(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "canvas": cv})
}

func (h *Handler) get(c *gin.Context) {
	cv, err := h.svc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "canvas": cv})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) applyRoutes(c *gin.Context) {
	var req applyRoutesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	selection := req.Selection
	if name := strings.TrimSpace(req.Preset); name != "" {
		if h.presets == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "presets not configured"})
			return
		}
		p, err := h.presets.Get(name)
		if err != nil {
			writeError(c, err)
			return
		}
		selection = p.Selection
	}
	if selection == nil {
		selection = rdomain.SelectionSet{}
	}

	cv, res, err := h.svc.ApplyRoutes(c.Request.Context(), strings.TrimSpace(c.Param("id")), selection)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "canvas": cv, "counts": res.Counts, "scale": res.Scale, "skipped": res.Skipped})
}

func (h *Handler) addMemo(c *gin.Context) {
	var req addMemoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	cv, memo, err := h.svc.AddMemo(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Router, req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "canvas": cv, "memo": memo})
}

func (h *Handler) updateInputs(c *gin.Context) {
	var req updateInputsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	cv, err := h.svc.UpdateInputs(c.Request.Context(), strings.TrimSpace(c.Param("id")), c.Param("node_id"), req.Inputs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "canvas": cv})
}

func (h *Handler) saveVersion(c *gin.Context) {
	ver, err := h.svc.SaveVersion(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "version": ver})
}

func (h *Handler) latestVersion(c *gin.Context) {
	ver, err := h.svc.LatestVersion(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "version": ver})
}

func (h *Handler) listPresets(c *gin.Context) {
	if h.presets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "presets not configured"})
		return
	}
	names, err := h.presets.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "presets": names})
}

func (h *Handler) getPreset(c *gin.Context) {
	if h.presets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "presets not configured"})
		return
	}
	p, err := h.presets.Get(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preset": p})
}

func (h *Handler) putPreset(c *gin.Context) {
	if h.presets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "presets not configured"})
		return
	}
	var req putPresetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p := &domain.Preset{Name: c.Param("name"), Selection: req.Selection}
	if err := h.presets.Upsert(p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preset": p})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrVersionNotFound),
		errors.Is(err, domain.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, rdomain.ErrRoutesNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "routes not ready"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
