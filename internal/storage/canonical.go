package storage

import (
	"net/url"
	"strings"
)

// CanonicalizeVisitURL reduces a URL to the form the visit log keys on.
// Scheme and host are lowercased, the fragment is dropped, a trailing
// slash is trimmed from the path and known tracking parameters are
// removed, so reloads and shared links collapse onto one row.
func CanonicalizeVisitURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.TrimSuffix(raw, "/")
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.Path = normalizeVisitPath(parsed.Path)

	query := parsed.Query()
	for key := range query {
		if isTrackingParam(key) {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func normalizeVisitPath(path string) string {
	if path == "/" {
		return ""
	}
	return strings.TrimSuffix(path, "/")
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	switch key {
	case "fbclid", "gclid", "msclkid", "dclid", "yclid", "mc_cid", "mc_eid", "_hsenc", "_hsmi", "igshid":
		return true
	}
	return false
}
