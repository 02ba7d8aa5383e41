package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert doc change")
	ErrFailedToList   = errors.New("failed to list doc changes")
)
