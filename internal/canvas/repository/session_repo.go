package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/netroute-lab/routeview/internal/canvas/domain"
)

const (
	sessionKeyPrefix = "canvas:session:" // canvas:session:{id} -> serialized canvas
	sessionTTL       = 7 * 24 * time.Hour
)

// SessionRepository keeps the serialized canvas of each editor session in
// Redis.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save writes the canvas and refreshes its TTL.
func (r *SessionRepository) Save(ctx context.Context, c *domain.Canvas) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("canvas id required")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal canvas: %w", err)
	}
	if err := r.client.Set(ctx, r.key(c.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save canvas: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Canvas, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get canvas: %w", err)
	}

	var c domain.Canvas
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal canvas: %w", err)
	}
	return &c, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete canvas: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) key(id string) string {
	return sessionKeyPrefix + id
}
