package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/netroute-lab/routeview/internal/logging"
	"github.com/netroute-lab/routeview/internal/network_inventory/domain"
)

var validate = validator.New()

// ParseModelsBytes decodes the network model document. The document must be
// a JSON array; entries that fail to decode or validate are logged and
// dropped so one bad object does not empty the router table.
func ParseModelsBytes(b []byte) ([]domain.ModelObject, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: network model: %v", domain.ErrMalformedDocument, err)
	}

	logger := logging.NewLogger(context.Background())
	out := make([]domain.ModelObject, 0, len(raw))
	for i, item := range raw {
		var m domain.ModelObject
		if err := json.Unmarshal(item, &m); err != nil {
			logger.LogWarnf("parse_models", "entry=%d dropped error=%v", i, err)
			continue
		}
		if err := validate.Struct(&m); err != nil {
			logger.LogWarnf("parse_models", "entry=%d dropped error=%v", i, err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func ParseRelationsBytes(b []byte) ([]domain.Relation, error) {
	var out []domain.Relation
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: relations: %v", domain.ErrMalformedDocument, err)
	}
	return out, nil
}

func ParseErrorListBytes(b []byte) ([]domain.ErrorEntry, error) {
	var out []domain.ErrorEntry
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: error list: %v", domain.ErrMalformedDocument, err)
	}
	return out, nil
}
