package engine

import "testing"

const (
	chromiumUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.60 Safari/537.36"
	webkitUA   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"
)

func TestParseUserAgentChromium(t *testing.T) {
	ua, err := ParseUserAgent(chromiumUA)
	if err != nil {
		t.Fatalf("ParseUserAgent: %v", err)
	}
	if ua.OSInfo != "X11; Linux x86_64" {
		t.Errorf("OSInfo = %q", ua.OSInfo)
	}
	if ua.WebKitVersion != "537.36" {
		t.Errorf("WebKitVersion = %q", ua.WebKitVersion)
	}
	if ua.UpstreamBrowser != "Chrome" || ua.UpstreamVersion != "124.0.6367.60" {
		t.Errorf("upstream = %s/%s", ua.UpstreamBrowser, ua.UpstreamVersion)
	}
	if ua.Products["Safari"] != "537.36" {
		t.Errorf("Products[Safari] = %q", ua.Products["Safari"])
	}
}

func TestParseUserAgentWebKit(t *testing.T) {
	ua, err := ParseUserAgent(webkitUA)
	if err != nil {
		t.Fatalf("ParseUserAgent: %v", err)
	}
	if ua.UpstreamBrowser != "Version" || ua.UpstreamVersion != "17.0" {
		t.Errorf("upstream = %s/%s", ua.UpstreamBrowser, ua.UpstreamVersion)
	}
	if ua.WebKitVersion != "605.1.15" {
		t.Errorf("WebKitVersion = %q", ua.WebKitVersion)
	}
}

func TestParseUserAgentErrors(t *testing.T) {
	tests := []struct {
		name string
		ua   string
	}{
		{"no webkit token", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/125.0"},
		{"no upstream token", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/605.1.15 (KHTML, like Gecko)"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseUserAgent(tt.ua); err == nil {
				t.Errorf("ParseUserAgent(%q) succeeded", tt.ua)
			}
		})
	}
}

func TestShortUpstreamVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"124.0.6367.60", "124.0.0.0"},
		{"17.0", "17.0"},
		{"99", "99"},
	}
	for _, tt := range tests {
		ua := UserAgent{UpstreamVersion: tt.version}
		if got := ua.ShortUpstreamVersion(); got != tt.want {
			t.Errorf("ShortUpstreamVersion(%s) = %q, want %q", tt.version, got, tt.want)
		}
	}
}
