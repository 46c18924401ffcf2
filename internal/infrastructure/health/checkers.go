package health

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/tablescout/tablescout/internal/core/ports"
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// upstreamHealthChecker verifies the upstream API host answers at all. It
// does not authenticate; reachability is the signal.
type upstreamHealthChecker struct {
	name    string
	baseURL string
	client  *http.Client
}

func (u *upstreamHealthChecker) Name() string { return u.name }

func (u *upstreamHealthChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%s returned status %d", u.name, resp.StatusCode)
	}
	return nil
}

// NewUpstreamHealthChecker creates a reachability checker for an upstream API
// host.
func NewUpstreamHealthChecker(name, baseURL string) ports.HealthChecker {
	return &upstreamHealthChecker{name: name, baseURL: baseURL, client: http.DefaultClient}
}
