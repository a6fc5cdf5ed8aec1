package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
	"github.com/netroute-lab/routeview/internal/network_inventory/service"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	inv := service.NewStaticInventory(
		[]domain.ModelObject{
			{ID: "C1", ClassName: domain.ClassConfig, Name: "cf1", Attrs: map[string]any{"hostname": "edge-1"}},
		},
		nil,
		[]domain.ErrorEntry{{Instances: map[string]string{"C1": "hostname"}}},
	)
	r := gin.New()
	New(inv).Register(r.Group("/inventory"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListRouters(t *testing.T) {
	w := get(setupRouter(), "/inventory/routers")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true, "routers": ["cf1"]}`, w.Body.String())
}

func TestRouterDetail(t *testing.T) {
	r := setupRouter()

	w := get(r, "/inventory/routers/CF1")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Detail domain.RouterDetail `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Detail.HasErrors)
	assert.Equal(t, "hostname", resp.Detail.Sections[0].Objects[0].Fields[0].Name)

	w = get(r, "/inventory/routers/cf7")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestObjectErrors(t *testing.T) {
	w := get(setupRouter(), "/inventory/errors/C1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true, "id": "c1", "fields": ["hostname"]}`, w.Body.String())

	w = get(setupRouter(), "/inventory/errors")
	assert.JSONEq(t, `{"ok": true, "errors": {"c1": ["hostname"]}}`, w.Body.String())
}
