package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SQLPlanCache is a Postgres-backed plan cache.
type SQLPlanCache struct {
	DB     *sql.DB
	TTL    time.Duration
	Logger *zap.Logger
}

func NewSQLPlanCache(db *sql.DB, ttl time.Duration, logger *zap.Logger) *SQLPlanCache {
	return &SQLPlanCache{DB: db, TTL: ttl, Logger: logger}
}

// Fetch the cached plan for key. Expiry is evaluated by the database clock.
func (s *SQLPlanCache) Get(ctx context.Context, key string) (_ domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, s.Logger, "plan.cache.sql.Get")(&err)

	if s.DB == nil {
		return domain.Plan{}, false, errors.New("plan cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Plan{}, false, errors.New("get plan cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM plan_cache
	WHERE cache_key = $1
		AND ($2::bigint = 0 OR created_at > now() - make_interval(secs => $2::bigint));
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, int64(s.TTL/time.Second)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Plan{}, false, nil
	}
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	p, err := decodePlan(payload)
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("get plan cache: %w", err)
	}
	return p, true, nil
}

// Store the plan under key.
func (s *SQLPlanCache) Put(ctx context.Context, key string, plan domain.Plan) (err error) {
	defer obs.Time(ctx, s.Logger, "plan.cache.sql.Put")(&err)

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
	INSERT INTO plan_cache (cache_key, payload, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		created_at = EXCLUDED.created_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, string(b)); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}
	return nil
}
