package webhook

import (
	"encoding/json"
	"fmt"

	"kb-integration/internal/model"
)

// envelope holds the fields every GitHub event shares.
type envelope struct {
	Action     string `json:"action"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

func parseEnvelope(payload []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return env, nil
}

// parsePullRequestEvent parses GitHub pull_request event
func parsePullRequestEvent(payload []byte) (model.PullRequestEvent, error) {
	var event struct {
		Action      string `json:"action"`
		Number      int    `json:"number"`
		PullRequest struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
			Head   struct {
				Ref string `json:"ref"`
				SHA string `json:"sha"`
			} `json:"head"`
			Base struct {
				Ref string `json:"ref"`
			} `json:"base"`
			User struct {
				Login string `json:"login"`
			} `json:"user"`
		} `json:"pull_request"`
		Repository struct {
			FullName string `json:"full_name"`
		} `json:"repository"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return model.PullRequestEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	number := event.Number
	if number == 0 {
		number = event.PullRequest.Number
	}
	if number == 0 || event.Repository.FullName == "" {
		return model.PullRequestEvent{}, fmt.Errorf("%w: missing pull request number or repository", ErrMalformedPayload)
	}

	return model.PullRequestEvent{
		RepositoryName: event.Repository.FullName,
		Number:         number,
		Action:         event.Action,
		Title:          event.PullRequest.Title,
		AuthorLogin:    event.PullRequest.User.Login,
		HeadRef:        event.PullRequest.Head.Ref,
		HeadSHA:        event.PullRequest.Head.SHA,
		BaseRef:        event.PullRequest.Base.Ref,
	}, nil
}
