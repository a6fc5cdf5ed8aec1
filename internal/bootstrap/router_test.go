package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	inventoryservice "github.com/netroute-lab/routeview/internal/network_inventory/service"
	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	routeservice "github.com/netroute-lab/routeview/internal/route_aggregation/service"
)

func TestBuildRouter(t *testing.T) {
	SetGinMode("test")
	assert.Equal(t, gin.TestMode, gin.Mode())

	r := BuildRouter(RouterDeps{
		ServiceName: "routeview",
		Version:     "test",
		CORSOrigins: []string{"http://localhost:3000"},
		Routes: routeservice.NewStaticRegistry(domain.NewRouteTable(domain.CategoryBlue, []domain.RouteEntry{
			{Key: "cl3-cl9", Path: []string{"cl3", "cf3", "cf4", "cf9", "cl9"}},
		})),
		Inventory: inventoryservice.NewStaticInventory(nil, nil, nil),
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Origin", "http://localhost:3000")
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"routes":"ready"`)

	w = get("/api/v1/routes/tables/blue/cl3-cl9")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get("/api/v1/inventory/routers")
	assert.Equal(t, http.StatusOK, w.Code)

	// canvas is not mounted without a service
	w = get("/api/v1/canvas/abc")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}
