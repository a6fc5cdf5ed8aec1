package http

import "github.com/gin-gonic/gin"

// Register mounts the canvas routes. recompute guards the route recompute
// endpoint (rate limiting).
func (h *Handler) Register(r *gin.RouterGroup, recompute ...gin.HandlerFunc) {
	canvas := r.Group("/canvas")
	canvas.POST("", h.create)
	canvas.GET("/:id", h.get)
	canvas.DELETE("/:id", h.delete)
	canvas.POST("/:id/routes", append(recompute, h.applyRoutes)...)
	canvas.POST("/:id/memos", h.addMemo)
	canvas.PUT("/:id/nodes/:node_id/inputs", h.updateInputs)
	canvas.POST("/:id/versions", h.saveVersion)
	canvas.GET("/:id/versions/latest", h.latestVersion)

	presets := r.Group("/presets")
	presets.GET("", h.listPresets)
	presets.GET("/:name", h.getPreset)
	presets.PUT("/:name", h.putPreset)
}
