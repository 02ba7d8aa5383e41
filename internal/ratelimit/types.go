package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Action categories.
const (
	CategoryProposalCreate = "proposal_create"
	CategoryWebhook        = "webhook"
)

// Policy bounds one category: at most Requests admissions in any trailing Window for each actor.
type Policy struct {
	Requests int
	Window   time.Duration
}

// Config holds the limiter settings.
type Config struct {
	Policies map[string]Policy
	// MaxActors caps the tracked (actor, category) pairs; the least recently seen are evicted.
	MaxActors int
}

// DefaultPolicies are used for categories missing from Config.Policies.
var DefaultPolicies = map[string]Policy{
	CategoryProposalCreate: {Requests: 10, Window: time.Hour},
	CategoryWebhook:        {Requests: 600, Window: time.Minute},
}

const (
	defaultMaxActors = 10000
	rejectionMessage = "Too many requests"
)

// Result is the outcome of one Check.
type Result struct {
	Allowed  bool
	Response *Rejection // set only when Allowed is false
}

// Rejection is a ready-to-send 429 response.
type Rejection struct {
	Status     int
	RetryAfter time.Duration
	Body       gin.H
}

func newRejection(retryAfter time.Duration) *Rejection {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return &Rejection{
		Status:     http.StatusTooManyRequests,
		RetryAfter: time.Duration(seconds) * time.Second,
		Body:       gin.H{"error": rejectionMessage, "retry_after": seconds},
	}
}

// Write sends the rejection and aborts the handler chain.
func (r *Rejection) Write(c *gin.Context) {
	c.Header("Retry-After", strconv.Itoa(int(r.RetryAfter/time.Second)))
	c.AbortWithStatusJSON(r.Status, r.Body)
}
