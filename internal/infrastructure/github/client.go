// Package github lists a user's repositories through the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector-api/internal/domain/apperr"
	"github.com/oksasatya/devconnector-api/pkg/helpers"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 5 * time.Second
	pageSize       = 5
	userAgent      = "devconnector-api"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	CacheTTL     time.Duration
}

type Client struct {
	client *http.Client
	cfg    Config
	local  *cache.Cache
	redis  redis.Cmdable
	logger *logrus.Logger
}

// New builds a client. rdb may be nil, in which case only the in-process cache is used.
func New(cfg Config, rdb redis.Cmdable, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Client{
		client: &http.Client{Timeout: defaultTimeout},
		cfg:    cfg,
		local:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		redis:  rdb,
		logger: logger,
	}
}

func cacheKey(username string) string { return "github:repos:" + username }

// ListRepos returns the user's five oldest repositories. Non-200 answers and
// transport failures are wrapped in apperr.ErrUpstream.
func (c *Client) ListRepos(ctx context.Context, username string) ([]map[string]any, error) {
	key := cacheKey(username)
	if x, found := c.local.Get(key); found {
		return x.([]map[string]any), nil
	}
	if c.redis != nil {
		var cached []map[string]any
		ok, err := helpers.RedisGetJSON(ctx, c.redis, key, &cached)
		if err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("redis get failed")
		}
		if ok {
			c.local.SetDefault(key, cached)
			return cached, nil
		}
	}

	repos, err := c.fetch(ctx, username)
	if err != nil {
		return nil, err
	}
	c.local.SetDefault(key, repos)
	if c.redis != nil {
		if err := helpers.RedisSetJSON(ctx, c.redis, key, repos, c.cfg.CacheTTL); err != nil {
			c.logger.WithError(err).WithField("key", key).Warn("redis set failed")
		}
	}
	return repos, nil
}

func (c *Client) fetch(ctx context.Context, username string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(pageSize))
	q.Set("sort", "created:asc")
	if c.cfg.ClientID != "" {
		q.Set("client_id", c.cfg.ClientID)
		q.Set("client_secret", c.cfg.ClientSecret)
	}
	endpoint := c.cfg.BaseURL + "/users/" + url.PathEscape(username) + "/repos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperr.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", apperr.ErrUpstream, resp.StatusCode)
	}

	var repos []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", apperr.ErrUpstream, err)
	}
	return repos, nil
}
