// Package urlutil turns user input into navigable URLs: fuzzy
// URL-or-search-term detection, search engine templates, and small URL
// helpers shared by the facade and the shell.
package urlutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultEngine is the key of the fallback search engine template.
const DefaultEngine = "DEFAULT"

var (
	// ErrInvalidURL marks input that cannot be turned into a URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrEmptyInput is returned for all-whitespace input.
	ErrEmptyInput = errors.New("empty search term")
)

// AutoSearch controls when non-URL-looking input becomes a search.
type AutoSearch string

const (
	// AutoSearchNaive treats input with a plausible TLD as a URL.
	AutoSearchNaive AutoSearch = "naive"
	// AutoSearchSchemeless only accepts URLs with an explicit scheme.
	AutoSearchSchemeless AutoSearch = "schemeless"
	// AutoSearchNever disables searching; almost everything is a URL.
	AutoSearchNever AutoSearch = "never"
)

// Opts carries the URL-handling configuration. Engines maps an engine
// name to a template; the template's "{}" placeholder receives the
// percent-encoded term ({unquoted}, {quoted} and {semiquoted} variants
// match the usual template language).
type Opts struct {
	AutoSearch  AutoSearch
	Engines     map[string]string
	OpenBaseURL bool
}

var (
	schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	// host:port input like "localhost:8080" parses as a scheme without
	// this carve-out.
	hostPortRe = regexp.MustCompile(`^[a-zA-Z0-9.-]+:\d+(/.*)?$`)
)

// ParseUserInput builds a URL the way a browser address bar would:
// explicit schemes parse as given, bare IPv6 addresses get bracketed,
// everything else gets http:// glued on.
func ParseUserInput(input string) (*url.URL, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidURL
	}

	raw := input
	switch {
	case strings.Contains(input, ":") && net.ParseIP(input) != nil:
		raw = "http://[" + input + "]"
	case hostPortRe.MatchString(input):
		raw = "http://" + input
	case schemeRe.MatchString(input):
	default:
		raw = "http://" + input
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, input)
	}
	return u, nil
}

// ParseSearchTerm splits input into an engine name and a term. The
// engine is empty for the default engine. A bare engine name is only
// accepted as such when OpenBaseURL is set.
func ParseSearchTerm(input string, opts Opts) (engine, term string, err error) {
	input = strings.TrimSpace(input)
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", "", ErrEmptyInput
	}

	if len(fields) >= 2 {
		if _, ok := opts.Engines[fields[0]]; ok {
			return fields[0], strings.TrimSpace(input[len(fields[0]):]), nil
		}
		return "", input, nil
	}

	if opts.OpenBaseURL {
		if _, ok := opts.Engines[input]; ok {
			return input, "", nil
		}
	}
	return "", input, nil
}

// SearchURL renders the search engine URL for input. With an empty term
// (bare engine name) the engine's base URL is returned with path, query
// and fragment stripped.
func SearchURL(input string, opts Opts) (*url.URL, error) {
	engine, term, err := ParseSearchTerm(input, opts)
	if err != nil {
		return nil, err
	}
	if engine == "" {
		engine = DefaultEngine
	}
	template, ok := opts.Engines[engine]
	if !ok {
		return nil, fmt.Errorf("no search engine %q configured", engine)
	}

	if term == "" {
		base, err := ParseUserInput(template)
		if err != nil {
			return nil, err
		}
		base.Path = ""
		base.RawQuery = ""
		base.Fragment = ""
		return base, nil
	}

	quoted := strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
	semiquoted := strings.ReplaceAll(quoted, "%2F", "/")
	evaluated := strings.NewReplacer(
		"{unquoted}", term,
		"{quoted}", quoted,
		"{semiquoted}", semiquoted,
		"{}", semiquoted,
	).Replace(template)

	return ParseUserInput(evaluated)
}

// FuzzyURL resolves user input to a URL: an existing local path wins,
// then search-term detection, then address parsing. forceSearch skips
// the path and URL checks entirely.
func FuzzyURL(input, cwd string, relative, doSearch, forceSearch bool, opts Opts) (*url.URL, error) {
	input = strings.TrimSpace(input)
	p := PathIfValid(input, cwd, relative, true)

	switch {
	case !forceSearch && p != "":
		return FileURL(p), nil
	case forceSearch || (doSearch && !IsURL(input, opts)):
		u, err := SearchURL(input, opts)
		if err != nil {
			// Unknown engine; fall back to address parsing.
			return ParseUserInput(input)
		}
		return u, nil
	default:
		return ParseUserInput(input)
	}
}

var (
	tldRe       = regexp.MustCompile(`\.([^.0-9_-]+|xn--[a-z0-9-]+)$`)
	forbiddenRe = regexp.MustCompile("[\x00-,/:-`{-¶]")
)

// isURLNaive checks whether input looks like an address: a literal IP,
// or a host with a plausible TLD and no forbidden characters.
func isURLNaive(input string) bool {
	u, err := ParseUserInput(input)
	if err != nil {
		return false
	}
	host := u.Hostname()

	if net.ParseIP(host) != nil && strings.Contains(input, host) {
		return true
	}

	return tldRe.MatchString(host) && !forbiddenRe.MatchString(host)
}

func hasExplicitScheme(input string) bool {
	if !schemeRe.MatchString(input) {
		return false
	}
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	// A second colon right after the scheme means things like scoped
	// C++ symbols, not a URI.
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "" || u.Path != "") &&
		!strings.HasPrefix(u.Opaque, ":") && !strings.HasPrefix(u.Path, ":")
}

// IsSpecialURL reports whether u uses an internal scheme that is always
// navigated, never searched.
func IsSpecialURL(u *url.URL) bool {
	if u == nil {
		return false
	}
	switch u.Scheme {
	case "about", "skiff", "file":
		return true
	}
	return false
}

// IsURL decides whether input should be treated as an address under the
// configured auto-search mode.
func IsURL(input string, opts Opts) bool {
	input = strings.TrimSpace(input)

	if opts.AutoSearch == AutoSearchNever {
		// Everything is a URL unless it names an explicit engine.
		engine, _, err := ParseSearchTerm(input, opts)
		if err != nil {
			return false
		}
		return engine == ""
	}

	userInput, err := ParseUserInput(input)
	if err != nil {
		// Also catches non-URLs with spaces in the host part.
		return false
	}

	switch {
	case hasExplicitScheme(input) && !strings.Contains(input, " "):
		return true
	case opts.AutoSearch == AutoSearchSchemeless:
		return false
	case userInput.Hostname() == "localhost",
		userInput.Hostname() == "127.0.0.1",
		userInput.Hostname() == "::1":
		return true
	case IsSpecialURL(userInput):
		return true
	default:
		return !strings.Contains(userInput.User.Username(), " ") && isURLNaive(input)
	}
}

// PathIfValid resolves input as a filesystem path: absolute paths and
// ~-expansions always qualify, relative ones only when asked for.
// Returns "" when it is not a usable path.
func PathIfValid(input, cwd string, relative, checkExists bool) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	expanded := input
	if strings.HasPrefix(input, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = filepath.Join(home, strings.TrimPrefix(input, "~"))
		}
	}

	var p string
	switch {
	case filepath.IsAbs(expanded):
		p = expanded
	case relative && cwd != "":
		p = filepath.Join(cwd, expanded)
	case relative:
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return ""
		}
		p = abs
	default:
		return ""
	}

	if checkExists {
		if _, err := os.Stat(p); err != nil {
			return ""
		}
	}
	return p
}

// mimeExtOverrides pins extensions where the platform MIME database
// gives awkward first picks.
var mimeExtOverrides = map[string]string{
	"text/html":  ".html",
	"text/plain": ".txt",
	"image/jpeg": ".jpg",
}

// FilenameFromURL suggests a download filename: the path basename, the
// host with .html glued on, or for data: URLs an extension derived from
// the MIME type.
func FilenameFromURL(u *url.URL, fallback string) string {
	if u == nil {
		return fallback
	}

	if strings.EqualFold(u.Scheme, "data") {
		mediatype := u.Opaque
		if i := strings.IndexAny(mediatype, ";,"); i >= 0 {
			mediatype = mediatype[:i]
		}
		if ext, ok := mimeExtOverrides[mediatype]; ok {
			return "download" + ext
		}
		exts, err := mime.ExtensionsByType(mediatype)
		if err != nil || len(exts) == 0 {
			return fallback
		}
		return "download" + exts[0]
	}

	if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
		return name
	}
	if u.Host != "" {
		return u.Hostname() + ".html"
	}
	return fallback
}

// HostTuple returns the (scheme, host, port) triple identifying a
// connection, e.g. for tracking certificate errors. Well-known ports
// are filled in for http, https and ftp.
func HostTuple(u *url.URL) (scheme, host string, port int, err error) {
	if u == nil {
		return "", "", 0, ErrInvalidURL
	}
	scheme = u.Scheme
	host = u.Hostname()
	if scheme == "" || host == "" {
		return "", "", 0, fmt.Errorf("%w: URL %q without scheme or host", ErrInvalidURL, u)
	}

	if portStr := u.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return "", "", 0, fmt.Errorf("%w: URL %q with bad port", ErrInvalidURL, u)
		}
		return scheme, host, port, nil
	}

	switch scheme {
	case "http":
		port = 80
	case "https":
		port = 443
	case "ftp":
		port = 21
	default:
		return "", "", 0, fmt.Errorf("%w: URL %q with unknown port", ErrInvalidURL, u)
	}
	return scheme, host, port, nil
}

// FileURL builds a file:// URL for an absolute local path.
func FileURL(p string) *url.URL {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
}

// DataURL builds a base64 data: URL for the given payload.
func DataURL(mimetype string, data []byte) *url.URL {
	b64 := base64.StdEncoding.EncodeToString(data)
	return &url.URL{Scheme: "data", Opaque: mimetype + ";base64," + b64}
}

// SafeDisplayString renders u for display, prefixing the punycode host
// form when the decoded host differs, so IDN-homograph URLs stay
// distinguishable.
func SafeDisplayString(u *url.URL) string {
	if u == nil {
		return ""
	}
	host := u.Hostname()
	decoded, err := idna.ToUnicode(host)
	if err == nil && decoded != host {
		for _, part := range strings.Split(host, ".") {
			if strings.HasPrefix(part, "xn--") {
				display := *u
				display.Host = decoded
				if port := u.Port(); port != "" {
					display.Host = decoded + ":" + port
				}
				return fmt.Sprintf("(%s) %s", host, display.String())
			}
		}
	}
	return u.String()
}

// ParseJavascriptURL extracts the source of a javascript: URL.
func ParseJavascriptURL(u *url.URL) (string, error) {
	if u == nil || u.Scheme != "javascript" {
		return "", errors.New("expected a javascript:... URL")
	}
	if u.Host != "" || u.User != nil {
		return "", fmt.Errorf("URL contains unexpected components: %s", u.Host)
	}

	code := u.Opaque
	if code == "" {
		code = u.Path
	}
	if decoded, err := url.PathUnescape(code); err == nil {
		code = decoded
	}
	if code == "" {
		return "", errors.New("resulted in empty JavaScript code")
	}
	return code, nil
}

// WidenedHostnames lists a hostname and every parent domain of it:
// a.c.foo -> [a.c.foo, c.foo, foo].
func WidenedHostnames(hostname string) []string {
	var out []string
	for hostname != "" {
		out = append(out, hostname)
		_, rest, found := strings.Cut(hostname, ".")
		if !found {
			break
		}
		hostname = rest
	}
	return out
}

// YankText renders u for copying: passwords removed, mailto: scheme
// stripped, and with pretty set the decoded display form.
func YankText(u *url.URL, pretty bool) string {
	if u == nil {
		return ""
	}
	copied := *u
	if copied.User != nil {
		copied.User = url.User(copied.User.Username())
	}
	if copied.Scheme == "mailto" {
		out := copied.Opaque
		if out == "" {
			out = strings.TrimPrefix(copied.String(), "mailto:")
		}
		return out
	}
	if pretty {
		if decoded, err := url.QueryUnescape(copied.String()); err == nil {
			return decoded
		}
	}
	return copied.String()
}
