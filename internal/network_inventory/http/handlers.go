package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
	"github.com/netroute-lab/routeview/internal/network_inventory/service"
)

type Handler struct {
	inv *service.Inventory
}

func New(inv *service.Inventory) *Handler {
	return &Handler{inv: inv}
}

func (h *Handler) Register(r *gin.RouterGroup) {
	r.GET("/routers", h.listRouters)
	r.GET("/routers/:name", h.routerDetail)
	r.GET("/errors", h.errorTable)
	r.GET("/errors/:id", h.objectErrors)
}

func (h *Handler) listRouters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "routers": h.inv.Routers()})
}

func (h *Handler) routerDetail(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing router name"})
		return
	}

	d, err := h.inv.RouterDetail(name)
	if err != nil {
		if errors.Is(err, domain.ErrRouterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "router not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "detail": d})
}

func (h *Handler) errorTable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "errors": h.inv.Errors()})
}

func (h *Handler) objectErrors(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": strings.ToLower(id), "fields": h.inv.FieldErrors(id)})
}
