package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/netroute-lab/routeview/internal/canvas/domain"
	rdomain "github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

// PresetRepository stores named route selections in PostgreSQL.
type PresetRepository struct {
	db *sql.DB
}

func NewPresetRepository(db *sql.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

// Upsert creates or replaces the preset named p.Name.
func (r *PresetRepository) Upsert(p *domain.Preset) error {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	if p.Name == "" {
		return fmt.Errorf("preset name required")
	}
	if p.Selection == nil {
		p.Selection = rdomain.SelectionSet{}
	}

	selJSON, err := json.Marshal(p.Selection)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	query := `
		INSERT INTO route_presets (name, selection)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			selection = EXCLUDED.selection,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRow(query, p.Name, selJSON).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert preset: %w", err)
	}
	return nil
}

func (r *PresetRepository) Get(name string) (*domain.Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	query := `
		SELECT name, selection, created_at, updated_at
		FROM route_presets
		WHERE name = $1
	`
	var p domain.Preset
	var selJSON []byte
	err := r.db.QueryRow(query, name).Scan(&p.Name, &selJSON, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	if err := json.Unmarshal(selJSON, &p.Selection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return &p, nil
}

func (r *PresetRepository) List() ([]string, error) {
	rows, err := r.db.Query(`SELECT name FROM route_presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
