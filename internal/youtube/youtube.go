// Package youtube recognizes YouTube video URLs.
package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var pathPrefixes = []string{"/embed/", "/shorts/", "/live/", "/v/"}

// ExtractVideoID returns the 11-character video ID referenced by raw. It
// accepts watch URLs, youtu.be short links, embed/shorts/live paths and bare
// IDs.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if videoIDPattern.MatchString(raw) {
		return raw, true
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")

	switch host {
	case "youtu.be":
		id, _, _ := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
		return validID(id)
	case "youtube.com", "youtube-nocookie.com":
		if parsed.Path == "/watch" {
			return validID(parsed.Query().Get("v"))
		}
		for _, prefix := range pathPrefixes {
			if rest, ok := strings.CutPrefix(parsed.Path, prefix); ok {
				id, _, _ := strings.Cut(rest, "/")
				return validID(id)
			}
		}
	}
	return "", false
}

// IsVideoURL reports whether raw references a YouTube video.
func IsVideoURL(raw string) bool {
	_, ok := ExtractVideoID(raw)
	return ok
}

func validID(id string) (string, bool) {
	if videoIDPattern.MatchString(id) {
		return id, true
	}
	return "", false
}
