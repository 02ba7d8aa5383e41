package webhook

import (
	"slices"

	"kb-integration/internal/model"
)

// Header names sent by GitHub.
const (
	HeaderSignature = "X-Hub-Signature-256"
	HeaderEvent     = "X-GitHub-Event"
	HeaderDelivery  = "X-GitHub-Delivery"
)

// DefaultAllowedActions are the pull_request actions that trigger processing.
var DefaultAllowedActions = []string{model.ActionOpened, model.ActionSynchronize, model.ActionReopened}

// Config holds webhook intake settings.
type Config struct {
	Secret         string   // Shared secret for signature verification
	AllowedActions []string // pull_request actions that are dispatched
	Workers        int      // Concurrent PR processors
	QueueSize      int      // Buffered events waiting for a worker
}

func (c Config) allowed(action string) bool {
	actions := c.AllowedActions
	if len(actions) == 0 {
		actions = DefaultAllowedActions
	}
	return slices.Contains(actions, action)
}

// --- Response DTOs ---

type queuedResp struct {
	Message    string `json:"message"`
	PRNumber   int    `json:"pr_number"`
	Repository string `json:"repository"`
}

type messageResp struct {
	Message string `json:"message"`
}

type livenessResp struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
