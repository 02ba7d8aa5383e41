package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kb-integration/internal/model"
	"kb-integration/internal/ratelimit"
	repo "kb-integration/internal/webhook/repository"
	pkgLog "kb-integration/pkg/log"
	"kb-integration/pkg/response"
)

const (
	msgInvalidSignature = "Invalid signature"
	msgInvalidPayload   = "Invalid JSON payload"
	msgQueued           = "PR event queued for processing"
	msgAlreadyProcessed = "Delivery already processed"
	msgEndpointActive   = "GitHub webhook endpoint is active"
)

// HandleGitHubWebhook godoc
// @Summary     Receive a GitHub webhook delivery
// @Description Verifies X-Hub-Signature-256, records the delivery and queues allow-listed pull_request actions.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
// @Param       X-Hub-Signature-256 header string true  "HMAC-SHA256 of the raw body"
// @Param       X-GitHub-Event      header string true  "Event type"
// @Param       X-GitHub-Delivery   header string false "Delivery ID"
// @Success     200 {object} queuedResp
// @Failure     400 {object} response.ErrorBody "Invalid JSON payload"
// @Failure     401 {object} response.ErrorBody "Invalid signature"
// @Failure     429 {object} response.ErrorBody "Too many requests"
// @Failure     500 {object} response.ErrorBody "Internal server error"
// @Router      /api/webhooks/github [POST]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := pkgLog.WithRequestID(c.Request.Context(), c.GetHeader(HeaderDelivery))

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: read body: %v", err)
		response.InternalError(c)
		return
	}

	if !h.verifier.Verify(ctx, body, c.GetHeader(HeaderSignature)) {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: rejected delivery from %s: invalid signature", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidSignature})
		return
	}

	if h.limiter != nil {
		if res := h.limiter.Check(c, ratelimit.CategoryWebhook); !res.Allowed {
			res.Response.Write(c)
			return
		}
	}

	env, err := parseEnvelope(body)
	if err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		response.BadRequest(c, msgInvalidPayload)
		return
	}

	eventType := c.GetHeader(HeaderEvent)
	delivery, duplicate := h.audit(ctx, repo.CreateDeliveryOptions{
		DeliveryID:     c.GetHeader(HeaderDelivery),
		EventType:      eventType,
		Action:         env.Action,
		RepositoryName: env.Repository.FullName,
		Payload:        body,
		ReceivedAt:     time.Now(),
	})

	if eventType != model.EventPullRequest {
		response.OK(c, messageResp{Message: fmt.Sprintf("Event %s not handled", eventType)})
		return
	}
	if !h.cfg.allowed(env.Action) {
		response.OK(c, messageResp{Message: fmt.Sprintf("PR %s event ignored", env.Action)})
		return
	}
	if duplicate && delivery.Processed {
		response.OK(c, messageResp{Message: msgAlreadyProcessed})
		return
	}

	event, err := parsePullRequestEvent(body)
	if err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		response.BadRequest(c, msgInvalidPayload)
		return
	}
	event.DeliveryID = delivery.ID

	if err := h.dispatcher.Dispatch(event); err != nil {
		// The audit row stays unprocessed and is picked up by the next replay.
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: dispatch %s#%d: %v", event.RepositoryName, event.Number, err)
	}

	response.OK(c, queuedResp{
		Message:    msgQueued,
		PRNumber:   event.Number,
		Repository: event.RepositoryName,
	})
}

// HandleGitHubPing godoc
// @Summary     Webhook liveness
// @Tags        Webhooks
// @Produce     json
// @Success     200 {object} livenessResp
// @Router      /api/webhooks/github [GET]
func (h *Handler) HandleGitHubPing(c *gin.Context) {
	response.OK(c, livenessResp{
		Message:   msgEndpointActive,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// audit writes the delivery record best-effort. A failed write is logged and
// returns a zero delivery so processing still goes ahead.
func (h *Handler) audit(ctx context.Context, opt repo.CreateDeliveryOptions) (model.WebhookDelivery, bool) {
	delivery, created, err := h.repo.CreateDelivery(ctx, opt)
	if err != nil {
		h.l.Errorf(ctx, "webhook.audit: %v", err)
		return model.WebhookDelivery{}, false
	}
	if !created {
		h.l.Infof(ctx, "webhook.audit: delivery %s already recorded", opt.DeliveryID)
	}
	return delivery, !created
}

// onResult is called by the dispatcher once an event finished processing.
func (h *Handler) onResult(ctx context.Context, event model.PullRequestEvent, err error) {
	if err != nil {
		h.l.Errorf(ctx, "webhook: processing %s#%d (%s) failed: %v", event.RepositoryName, event.Number, event.Action, err)
		return
	}

	h.l.Infof(ctx, "webhook: processed %s#%d (%s)", event.RepositoryName, event.Number, event.Action)
	if event.DeliveryID == "" {
		return
	}
	if err := h.repo.MarkProcessed(ctx, event.DeliveryID); err != nil && !errors.Is(err, context.Canceled) {
		h.l.Errorf(ctx, "webhook: mark %s processed: %v", event.DeliveryID, err)
	}
}
