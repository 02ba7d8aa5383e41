package prsync

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"kb-integration/pkg/github"
)

// matchSources keeps the files that exist after the pull request and match at
// least one pattern. Invalid patterns never match.
func matchSources(files []github.PullRequestFile, patterns []string) []github.PullRequestFile {
	matched := make([]github.PullRequestFile, 0, len(files))
	for _, f := range files {
		if f.Status == github.FileRemoved {
			continue
		}
		if matchesAny(f.Filename, patterns) {
			matched = append(matched, f)
		}
	}
	return matched
}

func matchesAny(path string, patterns []string) bool {
	path = strings.TrimPrefix(path, "/")
	for _, p := range patterns {
		ok, err := doublestar.Match(strings.TrimPrefix(p, "/"), path)
		if err == nil && ok {
			return true
		}
	}
	return false
}
