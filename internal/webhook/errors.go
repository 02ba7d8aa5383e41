package webhook

import "errors"

var (
	ErrMalformedPayload  = errors.New("malformed webhook payload")
	ErrQueueFull         = errors.New("dispatch queue is full")
	ErrDispatcherStopped = errors.New("dispatcher is stopped")
)
