package http

import (
	"github.com/netroute-lab/routeview/internal/canvas/domain"
	rdomain "github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

type applyRoutesReq struct {
	Selection rdomain.SelectionSet `json:"selection"`
	Preset    string               `json:"preset,omitempty"`
}

type addMemoReq struct {
	Router string `json:"router" binding:"required"`
	Title  string `json:"title,omitempty"`
}

type updateInputsReq struct {
	Inputs domain.Inputs `json:"inputs"`
}

type putPresetReq struct {
	Selection rdomain.SelectionSet `json:"selection" binding:"required"`
}

// PresetStore is the subset of the preset repository the handlers use.
type PresetStore interface {
	Upsert(p *domain.Preset) error
	Get(name string) (*domain.Preset, error)
	List() ([]string, error)
}
