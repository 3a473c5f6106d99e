// Package services: services/links.go
package services

import (
	"net/url"
	"strings"
)

// SanitizeLink validates a user-supplied URL and returns its canonical form.
// Only absolute https URLs without embedded credentials are accepted; the
// second return value is false for everything else.
func SanitizeLink(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", false
	}
	if u.Scheme != "https" {
		return "", false
	}
	if u.User != nil {
		return "", false
	}
	if u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// SanitizeLinks filters a set of candidate links down to the unique,
// sanitized survivors, preserving first-seen order.
func SanitizeLinks(links []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, l := range links {
		clean, ok := SanitizeLink(l)
		if !ok || seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	return out
}

// Domain returns the hostname of a URL with any leading "www." stripped,
// or "" when the URL does not parse. Used for the "(example.com)" hints
// next to submission titles.
func Domain(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
