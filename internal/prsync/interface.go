package prsync

import (
	"context"

	"kb-integration/internal/model"
	"kb-integration/pkg/github"
)

// UseCase turns a pull request event into recorded documentation changes.
// It satisfies webhook.Processor.
type UseCase interface {
	Process(ctx context.Context, event model.PullRequestEvent) error
	Sync(ctx context.Context, event model.PullRequestEvent) (Output, error)
}

// FileLister returns the files a pull request changes. An empty token means
// the lister's default credential.
type FileLister interface {
	ListPullRequestFiles(ctx context.Context, token, repository string, number int) ([]github.PullRequestFile, error)
}
