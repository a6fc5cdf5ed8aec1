package parser

import (
	"fmt"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	"gopkg.in/yaml.v3"
)

// ProtocolICMP is the only protocol whose path is read from a route.
const ProtocolICMP = "icmp"

type RouteDocument struct {
	None *YNone `yaml:"none,omitempty"`
}

type YNone struct {
	CommunicationRoute map[string]YRoute `yaml:"communication-route,omitempty"`
}

type YRoute struct {
	ICMP []string `yaml:"icmp,omitempty"`
}

// Routes returns the communication-route section, or nil when the document
// does not carry one.
func (d *RouteDocument) Routes() map[string]YRoute {
	if d == nil || d.None == nil {
		return nil
	}
	return d.None.CommunicationRoute
}

func ParseRouteYAMLBytes(b []byte) (*RouteDocument, error) {
	var d RouteDocument
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: route yaml: %v", domain.ErrMalformedDocument, err)
	}
	return &d, nil
}

func ParseRouteYAMLString(s string) (*RouteDocument, error) {
	return ParseRouteYAMLBytes([]byte(s))
}
