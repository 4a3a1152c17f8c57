package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// UserAgent is a user agent string split into the tokens the engines
// advertise.
type UserAgent struct {
	// OSInfo is the platform comment, the content of the first
	// parenthesized group.
	OSInfo string
	// WebKitVersion is the AppleWebKit product version. Both the WebKit
	// and Chromium lineages carry one.
	WebKitVersion string
	// UpstreamBrowser names the token the page-visible browser version
	// comes from: "Chrome" on Chromium lineages, "Version" on
	// Safari-style WebKit ones.
	UpstreamBrowser string
	// UpstreamVersion is the version following UpstreamBrowser.
	UpstreamVersion string
	// Products holds every product/version pair found in the string.
	Products map[string]string
}

var (
	uaCommentRe = regexp.MustCompile(`\(([^)]*)\)`)
	uaProductRe = regexp.MustCompile(`(\S+)/(\S+)`)
)

// ParseUserAgent splits a user agent string into its components. The
// string must carry an AppleWebKit token and either a Chrome or a
// Version token, which holds for every engine this package drives.
func ParseUserAgent(ua string) (UserAgent, error) {
	parsed := UserAgent{Products: make(map[string]string)}

	if m := uaCommentRe.FindStringSubmatch(ua); m != nil {
		parsed.OSInfo = m[1]
	}
	for _, m := range uaProductRe.FindAllStringSubmatch(ua, -1) {
		parsed.Products[m[1]] = m[2]
	}

	wk, ok := parsed.Products["AppleWebKit"]
	if !ok {
		return UserAgent{}, fmt.Errorf("engine: no AppleWebKit token in %q", ua)
	}
	parsed.WebKitVersion = wk

	switch {
	case parsed.Products["Chrome"] != "":
		parsed.UpstreamBrowser = "Chrome"
	case parsed.Products["Version"] != "":
		parsed.UpstreamBrowser = "Version"
	default:
		return UserAgent{}, fmt.Errorf("engine: no upstream browser token in %q", ua)
	}
	parsed.UpstreamVersion = parsed.Products[parsed.UpstreamBrowser]
	return parsed, nil
}

// ShortUpstreamVersion returns the upstream version with everything
// after the major component zeroed, the shape reduced user agents use.
func (ua UserAgent) ShortUpstreamVersion() string {
	parts := strings.Split(ua.UpstreamVersion, ".")
	for i := 1; i < len(parts); i++ {
		parts[i] = "0"
	}
	return strings.Join(parts, ".")
}
