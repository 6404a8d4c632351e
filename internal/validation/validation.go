// Package validation checks the shape of incoming video URLs before any
// network call is made.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// Recognized YouTube hosts. Anything else fails fast.
var videoHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// IsValidVideoURL reports whether rawURL has the shape of a watchable
// video URL: a known host plus a recognizable video identifier.
func IsValidVideoURL(rawURL string) bool {
	_, err := ExtractVideoID(rawURL)
	return err == nil
}

// ExtractVideoID parses the video identifier out of a URL.
//
// Accepted shapes:
//
//	http(s)://(www|m.)youtube.com/watch?v={ID}
//	http(s)://youtu.be/{ID}
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	if !videoHosts[parsed.Hostname()] {
		return "", fmt.Errorf("unrecognised hostname %q", parsed.Hostname())
	}

	if parsed.Hostname() == "youtu.be" {
		id := strings.Trim(parsed.Path, "/")
		if id == "" {
			return "", fmt.Errorf("missing video id in path")
		}
		return id, nil
	}

	if parsed.Path != "/watch" {
		return "", fmt.Errorf("unrecognised path %q", parsed.Path)
	}
	id := parsed.Query().Get("v")
	if id == "" {
		return "", fmt.Errorf("missing ?v= query parameter")
	}
	return id, nil
}

// FallbackVideoID pulls an id-like token out of a URL without insisting
// on a valid shape. Used for degraded metadata when the probe backend
// is unavailable: a "v" query parameter if present, else the last path
// segment, else the URL itself.
func FallbackVideoID(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if v := parsed.Query().Get("v"); v != "" {
			return v
		}
		if path := strings.Trim(parsed.Path, "/"); path != "" {
			segments := strings.Split(path, "/")
			return segments[len(segments)-1]
		}
	}
	return rawURL
}
