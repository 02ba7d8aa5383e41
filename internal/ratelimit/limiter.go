package ratelimit

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"kb-integration/internal/model"
	"kb-integration/pkg/log"
)

// window holds the admission times that still fall inside the policy window,
// oldest first. It never holds more than Policy.Requests entries.
type window struct {
	hits []time.Time
}

type implLimiter struct {
	mu       sync.Mutex
	windows  *expirable.LRU[string, *window]
	policies map[string]Policy
	now      func() time.Time
	// rejections throttles the rejection log under floods.
	rejections *rate.Sometimes
	l          log.Logger
}

// New creates a sliding-window limiter keyed by (actor, category).
func New(cfg Config, l log.Logger) Limiter {
	policies := make(map[string]Policy, len(DefaultPolicies)+len(cfg.Policies))
	for k, p := range DefaultPolicies {
		policies[k] = p
	}
	for k, p := range cfg.Policies {
		if p.Requests > 0 && p.Window > 0 {
			policies[k] = p
		}
	}

	maxActors := cfg.MaxActors
	if maxActors <= 0 {
		maxActors = defaultMaxActors
	}

	var ttl time.Duration
	for _, p := range policies {
		ttl = max(ttl, p.Window)
	}

	return &implLimiter{
		windows:    expirable.NewLRU[string, *window](maxActors, nil, ttl),
		policies:   policies,
		now:        time.Now,
		rejections: &rate.Sometimes{First: 1, Interval: time.Second},
		l:          l,
	}
}

func (rl *implLimiter) Check(c *gin.Context, category string) Result {
	policy, ok := rl.policies[category]
	if !ok {
		return Result{Allowed: true}
	}

	key := category + ":" + actorKey(c)
	now := rl.now()
	cutoff := now.Add(-policy.Window)

	rl.mu.Lock()
	w, found := rl.windows.Get(key)
	if !found {
		w = &window{hits: make([]time.Time, 0, policy.Requests)}
	}

	expired := 0
	for expired < len(w.hits) && !w.hits[expired].After(cutoff) {
		expired++
	}
	w.hits = w.hits[:copy(w.hits, w.hits[expired:])]

	var retryAfter time.Duration
	if len(w.hits) < policy.Requests {
		w.hits = append(w.hits, now)
	} else {
		retryAfter = w.hits[0].Add(policy.Window).Sub(now)
	}
	// Re-adding refreshes the TTL so an active window is never evicted early.
	rl.windows.Add(key, w)
	rl.mu.Unlock()

	if retryAfter > 0 {
		rl.rejections.Do(func() {
			rl.l.Warnf(c.Request.Context(), "ratelimit.Check: %s exceeded, retry in %s", key, retryAfter)
		})
		return Result{Allowed: false, Response: newRejection(retryAfter)}
	}
	return Result{Allowed: true}
}

func (rl *implLimiter) Middleware(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if res := rl.Check(c, category); !res.Allowed {
			res.Response.Write(c)
			return
		}
		c.Next()
	}
}

// actorKey prefers the authenticated user and falls back to the client IP.
// Forwarding headers only count when the engine trusts the immediate peer.
func actorKey(c *gin.Context) string {
	if sc, ok := model.GetScopeFromContext(c.Request.Context()); ok {
		return "user:" + sc.UserID
	}
	return "ip:" + c.ClientIP()
}
