package model

import "time"

// WebhookDelivery is the append-only audit record written for every verified inbound delivery.
type WebhookDelivery struct {
	ID             string
	DeliveryID     string // X-GitHub-Delivery, empty when the sender omitted it
	EventType      string
	Action         string
	RepositoryName string
	Payload        []byte // stored verbatim
	Processed      bool
	ReceivedAt     time.Time
}

// Event types and pull request actions understood by the intake.
const (
	EventPullRequest = "pull_request"
	EventPing        = "ping"

	ActionOpened      = "opened"
	ActionSynchronize = "synchronize"
	ActionReopened    = "reopened"
	ActionClosed      = "closed"
)

// PullRequestEvent is the slice of a pull_request payload the processor needs.
type PullRequestEvent struct {
	DeliveryID     string // audit record ID, not the GitHub header
	RepositoryName string // owner/repo
	Number         int
	Action         string
	Title          string
	AuthorLogin    string
	HeadRef        string
	HeadSHA        string
	BaseRef        string
}
