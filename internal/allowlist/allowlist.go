package allowlist

import (
	"net/url"
	"strings"
)

// List holds the normalized set of domain patterns permitted as image
// sources. Patterns are exact hostnames or wildcards of the form
// "*.example.com", which match the bare domain and any subdomain.
type List struct {
	patterns []string
}

// New normalizes raw patterns: entries are trimmed and lower-cased, empty
// entries discarded.
func New(patterns []string) List {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			normalized = append(normalized, p)
		}
	}

	return List{patterns: normalized}
}

// FromEnv builds a List from the comma-separated ALLOWED_DOMAINS value.
func FromEnv(value string) List {
	return New(strings.Split(value, ","))
}

// Empty reports whether no patterns are configured. An empty list allows
// every source domain; operators must set ALLOWED_DOMAINS in production.
func (l List) Empty() bool {
	return len(l.patterns) == 0
}

// Allows reports whether the hostname of rawURL matches any configured
// pattern. Unparseable URLs fail closed.
func (l List) Allows(rawURL string) bool {
	if l.Empty() {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}

	hostname := strings.ToLower(u.Hostname())

	for _, pattern := range l.patterns {
		if matches(hostname, pattern) {
			return true
		}
	}

	return false
}

func matches(hostname, pattern string) bool {
	if hostname == pattern {
		return true
	}

	if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
		return hostname == suffix || strings.HasSuffix(hostname, "."+suffix)
	}

	return false
}
