// Package titles derives a thread name from the text of a Discord message.
package titles

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"

	"github.com/pnotequalnp/thread-master/models"
)

const prefixSeparator = ": "

// Rule inspects a message and either proposes a title or declines.
type Rule func(content string, lines []string) mo.Option[string]

// DefaultRules is the ordered rule chain used by DeriveTitle
var DefaultRules = []Rule{
	ColonPrefixRule,
	URLRule,
}

// DeriveTitle returns the first title proposed by DefaultRules, or None.
func DeriveTitle(content string) mo.Option[string] {
	return DeriveTitleWith(DefaultRules, content)
}

// DeriveTitleWith evaluates rules in order and returns the first proposed title.
func DeriveTitleWith(rules []Rule, content string) mo.Option[string] {
	lines := splitLines(content)
	for _, rule := range rules {
		if title := rule(content, lines); title.IsPresent() {
			return title
		}
	}
	return mo.None[string]()
}

// ColonPrefixRule matches "Topic: rest of message" on the first line.
// The separator check runs against the whole content while the split only
// looks at the first line, so a separator on a later line matches nothing.
func ColonPrefixRule(content string, lines []string) mo.Option[string] {
	if !strings.Contains(content, prefixSeparator) || len(lines) == 0 {
		return mo.None[string]()
	}

	prefix, _, found := strings.Cut(lines[0], prefixSeparator)
	if !found || prefix == "" || utf8.RuneCountInString(prefix) > models.MaxThreadNameLength {
		return mo.None[string]()
	}
	return mo.Some(prefix)
}

// URLRule names the thread after the first line that parses as an absolute URL
// and yields a usable name.
func URLRule(_ string, lines []string) mo.Option[string] {
	for _, line := range lines {
		u, err := url.Parse(strings.TrimSpace(line))
		if err != nil || !u.IsAbs() {
			continue
		}
		if title := titleFromURL(u); title != "" {
			return mo.Some(truncate(title, models.MaxThreadNameLength))
		}
	}
	return mo.None[string]()
}

func titleFromURL(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	// segments keep their percent-encoding so an escaped slash stays inside one segment
	path := u.EscapedPath()

	switch host {
	case "github.com", "gitlab.com":
		// owner/repo/...: the repository name is the second segment
		segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
		if len(segments) > 1 {
			return segments[1]
		}
		return ""
	}

	var nonEmpty []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			nonEmpty = append(nonEmpty, segment)
		}
	}
	if len(nonEmpty) == 1 {
		return nonEmpty[0]
	}
	return host
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes])
}
