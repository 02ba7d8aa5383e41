package prsync

import "time"

// Config tunes the calls made to the file lister.
type Config struct {
	RetryAttempts uint64 // retries after the first call
	RetryBase     time.Duration
}

const (
	defaultRetryAttempts = 3
	defaultRetryBase     = 500 * time.Millisecond
)

// Output summarises one processed event.
type Output struct {
	Skipped  bool // config disabled
	Files    int  // files in the pull request
	Matched  int  // files matching a source pattern
	Recorded int  // new doc change rows
}
