package prsync

import "errors"

var ErrInvalidEvent = errors.New("pull request event needs a repository and a number")
