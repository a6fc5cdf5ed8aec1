package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("malformed inventory document")
	ErrRouterNotFound    = errors.New("router not found")
)

const ClassConfig = "Config"

// ModelObject is one entry of the network model document. Fields other than
// id, className and name are kept in Attrs. Entries without an id are
// dropped at parse time; className may be empty.
type ModelObject struct {
	ID        string         `json:"id" validate:"required"`
	ClassName string         `json:"className"`
	Name      string         `json:"name,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

func (m *ModelObject) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.Attrs = map[string]any{}
	for k, v := range raw {
		switch k {
		case "id":
			if err := json.Unmarshal(v, &m.ID); err != nil {
				return fmt.Errorf("field id: %w", err)
			}
		case "className":
			if err := json.Unmarshal(v, &m.ClassName); err != nil {
				return fmt.Errorf("field className: %w", err)
			}
		case "name":
			if err := json.Unmarshal(v, &m.Name); err != nil {
				return fmt.Errorf("field name: %w", err)
			}
		default:
			var a any
			if err := json.Unmarshal(v, &a); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			m.Attrs[k] = a
		}
	}
	return nil
}

// Relation ties the objects in Refs to the Config objects named in Kanren.
type Relation struct {
	Kanren []map[string]string `json:"kanren"`
	Refs   map[string]string   `json:"refs,omitempty"`
}

func (r *Relation) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Refs = map[string]string{}
	for k, v := range raw {
		if k == "kanren" {
			if err := json.Unmarshal(v, &r.Kanren); err != nil {
				return fmt.Errorf("field kanren: %w", err)
			}
			continue
		}
		var id string
		if err := json.Unmarshal(v, &id); err != nil {
			// non-string values are not object references
			continue
		}
		r.Refs[k] = id
	}
	return nil
}

// ErrorEntry maps object ids to the name of the field that failed a check.
type ErrorEntry struct {
	Instances map[string]string `json:"instances"`
}

// ErrorTable maps a lowercase object id to its failing field names.
type ErrorTable map[string][]string

type Field struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Error bool   `json:"error"`
}

type ObjectView struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Fields []Field `json:"fields"`
	Error  bool    `json:"error"`
}

type Section struct {
	ClassName string       `json:"class_name"`
	Objects   []ObjectView `json:"objects"`
	Error     bool         `json:"error"`
}

// RouterDetail is what the router side drawer shows.
type RouterDetail struct {
	Router    string    `json:"router"`
	Sections  []Section `json:"sections"`
	HasErrors bool      `json:"has_errors"`
}
