package webhook

import (
	"context"
	"errors"

	"kb-integration/internal/model"
	repo "kb-integration/internal/webhook/repository"
)

// ReplayPending re-dispatches unprocessed pull request deliveries, oldest
// first, and returns how many were queued. It stops early when the queue fills.
func (h *Handler) ReplayPending(ctx context.Context) (int, error) {
	processed := false
	deliveries, err := h.repo.ListDeliveries(ctx, repo.ListDeliveriesOptions{
		EventType: model.EventPullRequest,
		Processed: &processed,
	})
	if err != nil {
		h.l.Errorf(ctx, "webhook.ReplayPending ListDeliveries: %v", err)
		return 0, err
	}

	queued := 0
	for _, d := range deliveries {
		if !h.cfg.allowed(d.Action) {
			continue
		}

		event, err := parsePullRequestEvent(d.Payload)
		if err != nil {
			h.l.Warnf(ctx, "webhook.ReplayPending: skip %s: %v", d.ID, err)
			continue
		}
		event.DeliveryID = d.ID

		if err := h.dispatcher.Dispatch(event); err != nil {
			if errors.Is(err, ErrQueueFull) {
				h.l.Warnf(ctx, "webhook.ReplayPending: queue full after %d of %d deliveries", queued, len(deliveries))
				return queued, nil
			}
			return queued, err
		}
		queued++
	}

	if queued > 0 {
		h.l.Infof(ctx, "webhook.ReplayPending: queued %d deliveries", queued)
	}
	return queued, nil
}
