package proposal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrUnauthenticated  = errors.New("author identity is required")
	ErrInvalidStatus    = errors.New("invalid status filter")
)

// ValidationError lists every shape problem of a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid proposal: " + strings.Join(e.Problems, "; ")
}

// QualityError is returned when the content scores below the gate threshold.
type QualityError struct {
	Issues []string
	Score  float64
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("quality gate rejected content (score %.0f): %s", e.Score, strings.Join(e.Issues, "; "))
}

// ConflictError is returned when the submission's base version is not the
// document's current version, or another pending proposal already claimed it.
type ConflictError struct {
	CurrentVersion int64
	YourVersion    int64
	PendingClaim   bool
}

func (e *ConflictError) Error() string {
	if e.PendingClaim {
		return fmt.Sprintf("version %d already has a pending proposal", e.YourVersion)
	}
	return fmt.Sprintf("document is at version %d, proposal based on %d", e.CurrentVersion, e.YourVersion)
}
