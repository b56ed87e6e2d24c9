package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"strings"
	"time"
)

// SQLite backed plan cache. Entries older than TTL are treated as misses;
// a zero TTL never expires.
type SqlitePlanCache struct {
	DB  *sql.DB
	TTL time.Duration
	Now func() time.Time
}

func NewSqlitePlanCache(db *sql.DB, ttl time.Duration) *SqlitePlanCache {
	return &SqlitePlanCache{DB: db, TTL: ttl, Now: time.Now}
}

// Fetch the cached plan for key.
func (s *SqlitePlanCache) Get(ctx context.Context, key string) (domain.Plan, bool, error) {
	if s.DB == nil {
		return domain.Plan{}, false, errors.New("plan cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Plan{}, false, errors.New("get plan cache: key must not be empty")
	}

	q := `
	SELECT
		payload,
		created_at
	FROM plan_cache
	WHERE cache_key = ?;
	`

	var payload string
	var createdAt int64
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, false, nil
	}
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	if s.TTL > 0 && s.Now().Sub(time.Unix(createdAt, 0)) > s.TTL {
		return domain.Plan{}, false, nil
	}

	p, err := decodePlan([]byte(payload))
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("get plan cache: %w", err)
	}
	return p, true, nil
}

// Store the plan under key, replacing any previous entry.
func (s *SqlitePlanCache) Put(ctx context.Context, key string, plan domain.Plan) error {
	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}

	b, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO plan_cache (
		cache_key,
		payload,
		created_at
	)
	VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, string(b), s.Now().Unix()); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}
	return nil
}
