package repository

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToInsert   = errors.New("failed to insert record")
	ErrFailedToGet      = errors.New("failed to get record")
	ErrFailedToList     = errors.New("failed to list records")
	ErrDocumentNotFound = errors.New("document not found")
)

// VersionConflictError reports that a conditional insert found the document
// at a different version, or that the version is already claimed.
type VersionConflictError struct {
	CurrentVersion int64
	PendingClaim   bool
}

func (e *VersionConflictError) Error() string {
	if e.PendingClaim {
		return fmt.Sprintf("version %d already claimed by a pending proposal", e.CurrentVersion)
	}
	return fmt.Sprintf("document is at version %d", e.CurrentVersion)
}
