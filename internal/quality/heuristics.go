package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	headingRe     = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+\S`)
	placeholderRe = regexp.MustCompile(`(?i)\b(todo|tbd|fixme|lorem ipsum)\b`)
	brokenLinkRe  = regexp.MustCompile(`\[\s*\]\([^)]*\)|\[[^\]]+\]\(\s*\)`)
)

type check func(content string, cfg Config) (issue string, penalty float64)

var checks = []check{
	checkLength,
	checkHeading,
	checkParagraphs,
	checkFences,
	checkPlaceholders,
	checkShouting,
	checkLinks,
	checkRepeatedLines,
}

func checkLength(content string, cfg Config) (string, float64) {
	n := len([]rune(strings.TrimSpace(content)))
	if n < cfg.MinLength {
		return fmt.Sprintf("content is too short (%d characters, minimum %d)", n, cfg.MinLength), penaltyTooShort
	}
	return "", 0
}

func checkHeading(content string, _ Config) (string, float64) {
	if !headingRe.MatchString(content) {
		return "content has no markdown heading", penaltyNoHeading
	}
	return "", 0
}

func checkParagraphs(content string, _ Config) (string, float64) {
	paragraphs := 0
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			inBlock = false
			continue
		}
		if !inBlock {
			paragraphs++
			inBlock = true
		}
	}
	if paragraphs < 2 {
		return "content is a single paragraph", penaltySingleParagraph
	}
	return "", 0
}

func checkFences(content string, _ Config) (string, float64) {
	fences := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fences++
		}
	}
	if fences%2 != 0 {
		return "code fences are not balanced", penaltyUnbalancedFence
	}
	return "", 0
}

func checkPlaceholders(content string, _ Config) (string, float64) {
	if m := placeholderRe.FindString(content); m != "" {
		return fmt.Sprintf("content contains placeholder text (%q)", m), penaltyPlaceholder
	}
	return "", 0
}

func checkShouting(content string, _ Config) (string, float64) {
	var letters, upper int
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters >= 20 && float64(upper)/float64(letters) > 0.30 {
		return "content has excessive uppercase text", penaltyShouting
	}
	return "", 0
}

func checkLinks(content string, _ Config) (string, float64) {
	if n := len(brokenLinkRe.FindAllString(content, -1)); n > 0 {
		return fmt.Sprintf("content has %d empty or broken link(s)", n), penaltyBrokenLink
	}
	return "", 0
}

func checkRepeatedLines(content string, _ Config) (string, float64) {
	seen := make(map[string]int)
	total := 0
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if trimmed == "" || inFence {
			continue
		}
		seen[trimmed]++
		total++
	}
	if total < 4 {
		return "", 0
	}

	repeated := 0
	for _, n := range seen {
		repeated += n - 1
	}
	if float64(repeated)/float64(total) > 0.30 {
		return "content repeats the same lines", penaltyRepeatedLines
	}
	return "", 0
}
