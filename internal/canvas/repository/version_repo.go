package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/netroute-lab/routeview/internal/canvas/domain"
)

// pgxDB is the part of *pgxpool.Pool the repository uses.
type pgxDB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VersionRepository stores numbered canvas snapshots in the canvas_versions
// table.
type VersionRepository struct {
	db pgxDB
}

func NewVersionRepository(db *pgxpool.Pool) *VersionRepository {
	if db == nil {
		return &VersionRepository{}
	}
	return &VersionRepository{db: db}
}

func (r *VersionRepository) CreateVersion(ctx context.Context, c *domain.Canvas) (*domain.Version, error) {
	if c == nil || strings.TrimSpace(c.ID) == "" {
		return nil, fmt.Errorf("canvas id required")
	}
	if r.db == nil {
		return nil, fmt.Errorf("version %w", domain.ErrNotConfigured)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal canvas: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// serialize version numbering per session
	if _, err := tx.Exec(ctx, `select pg_advisory_xact_lock(hashtext($1))`, c.ID); err != nil {
		return nil, err
	}

	var next int
	if err := tx.QueryRow(ctx, `
select coalesce(max(version_number), 0) + 1
from canvas_versions
where session_id = $1
`, c.ID).Scan(&next); err != nil {
		return nil, err
	}

	ver := &domain.Version{
		ID:            "cver-" + uuid.NewString(),
		SessionID:     c.ID,
		VersionNumber: next,
		Canvas:        c,
	}
	err = tx.QueryRow(ctx, `
insert into canvas_versions (id, session_id, version_number, canvas_json)
values ($1, $2, $3, $4::jsonb)
returning created_at
`, ver.ID, ver.SessionID, ver.VersionNumber, string(body)).Scan(&ver.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ver, nil
}

func (r *VersionRepository) Latest(ctx context.Context, sessionID string) (*domain.Version, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id required")
	}
	if r.db == nil {
		return nil, fmt.Errorf("version %w", domain.ErrNotConfigured)
	}

	ver := &domain.Version{SessionID: sessionID}
	var body string
	err := r.db.QueryRow(ctx, `
select id, version_number, canvas_json::text, created_at
from canvas_versions
where session_id = $1
order by version_number desc
limit 1
`, sessionID).Scan(&ver.ID, &ver.VersionNumber, &body, &ver.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, err
	}

	var c domain.Canvas
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		return nil, fmt.Errorf("unmarshal canvas: %w", err)
	}
	ver.Canvas = &c
	return ver, nil
}
