package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r *gin.RouterGroup) {
	routes := r.Group("/routes")
	routes.GET("/tables", h.tables)
	routes.GET("/tables/:category/:key", h.route)
	routes.POST("/segments", h.segments)
	routes.POST("/links", h.links)
}
