package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"route-optimizer-service/internal/adapters/loader"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPNetworkSource implements NetworkSource by downloading a YAML or JSON
// network document from a remote endpoint.
//
// Transient failures (network errors, 429 and 5xx responses) are retried
// with exponential backoff. The source is safe for concurrent use.
type HTTPNetworkSource struct {
	session *http.Client
	url     string
	token   string
	backoff time.Duration
	logger  *zap.Logger
}

func NewHTTPNetworkSource(url, token string, logger *zap.Logger) (*HTTPNetworkSource, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("network source url is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPNetworkSource{
		session: &http.Client{Timeout: 10 * time.Second},
		url:     url,
		token:   token,
		backoff: 200 * time.Millisecond,
		logger:  logger,
	}, nil
}

func (h *HTTPNetworkSource) FetchNetwork(ctx context.Context) (_ domain.Network, err error) {
	defer obs.Time(ctx, h.logger, "network.source.http.Fetch")(&err)

	resp, err := h.doWithRetry(ctx, func() (*http.Request, error) {
		return h.newRequest(ctx, http.MethodGet, h.url)
	})
	if err != nil {
		return domain.Network{}, fmt.Errorf("fetch network %q: %w", h.url, err)
	}
	defer resp.Body.Close()

	n, err := loader.Decode(resp.Body)
	if err != nil {
		return domain.Network{}, fmt.Errorf("fetch network %q: %w", h.url, err)
	}

	h.logger.Info("network downloaded",
		zap.String("url", h.url),
		zap.Int("points", len(n.Points)),
		zap.Int("edges", len(n.Edges)),
		zap.Int("orders", len(n.Orders)),
	)
	return n, nil
}
