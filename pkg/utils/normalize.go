package utils

import (
	"regexp"
	"strings"
)

var (
	blockTagRe = regexp.MustCompile(`(?i)<\s*(?:br\s*/?|/p|/div|/tr|/li|/h[1-6]|/table|/ul|/ol)\s*>`)
	htmlTagRe  = regexp.MustCompile(`<[^>]*>`)
	spaceRunRe = regexp.MustCompile(`[ \t\x{00a0}]+`)
)

// NormalizeBody converts an HTML or plain-text body into an ordered
// list of non-empty lines. Block-level boundaries become line breaks
// before tags are stripped, so proximity between lines is preserved
// for the scan that follows.
func NormalizeBody(body string) []string {
	text := blockTagRe.ReplaceAllString(body, "\n")
	text = htmlTagRe.ReplaceAllString(text, " ")

	// Replace HTML entities
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&#8217;", "'")
	text = strings.ReplaceAll(text, "&quot;", "\"")

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := spaceRunRe.ReplaceAllString(raw, " ")
		line = strings.TrimSpace(strings.Trim(line, "\r"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
