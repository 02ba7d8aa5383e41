package repoconfig

import (
	"strings"
	"unicode"

	"kb-integration/internal/model"
)

var (
	docsRepoPatterns = []string{"**/*.md", "**/*.mdx"}
	codeRepoPatterns = []string{"docs/**/*.md", "README.md"}
	defaultRules     = []string{"markdown"}
	docsRepoSuffixes = []string{"docs", "documentation", "wiki", "handbook", "kb"}
)

// Default derives a config from naming conventions: documentation repositories
// contribute every markdown file, code repositories only docs/ and the README.
// The target is the slug of the repository name.
func Default(repositoryName string) model.RepositoryConfig {
	name := strings.ToLower(strings.TrimSpace(repositoryName))
	_, repo, found := strings.Cut(name, "/")
	if !found {
		repo = name
	}

	patterns := codeRepoPatterns
	for _, suffix := range docsRepoSuffixes {
		if strings.HasSuffix(repo, suffix) {
			patterns = docsRepoPatterns
			break
		}
	}

	return model.RepositoryConfig{
		RepositoryName: strings.TrimSpace(repositoryName),
		SourcePatterns: append([]string(nil), patterns...),
		Targets:        []string{slug(repo)},
		Rules:          append([]string(nil), defaultRules...),
		Enabled:        true,
	}
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "default"
	}
	return out
}
