package quality

import "context"

// Gate scores proposed markdown against structural heuristics.
type Gate interface {
	Run(ctx context.Context, input RunInput) Result
}
