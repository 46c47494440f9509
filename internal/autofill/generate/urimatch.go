package generate

import (
	"net"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/cozy/keys-autofill/internal/types"
)

// domainMatchBlacklist lists hosts that never match a saved URI of the
// keyed registrable domain under the Domain strategy.
var domainMatchBlacklist = map[string][]string{
	"google.com": {"script.google.com"},
}

// UntrustedIframe reports whether a login fill targets a frame whose URL
// differs from the tab URL and matches none of the login's saved URIs.
func UntrustedIframe(pageURL string, login *types.Login, opts types.FillOptions) bool {
	if pageURL == opts.TabURL {
		return false
	}
	if login == nil {
		return true
	}
	for _, u := range login.URIs {
		if URIMatches(u, pageURL, opts.DefaultUriMatch, opts.EquivalentDomains) {
			return false
		}
	}
	return true
}

// SavedURLs returns the login URIs whose strategy is not Never.
func SavedURLs(login *types.Login) []string {
	var out []string
	for _, u := range login.URIs {
		if u.URI == "" || (u.Match != nil && *u.Match == types.UriMatchNever) {
			continue
		}
		out = append(out, u.URI)
	}
	return out
}

// URIMatches tests a saved login URI against target. The URI's own
// strategy applies, else defaultMatch. Malformed URLs never match.
func URIMatches(u types.LoginURI, target string, defaultMatch types.UriMatchStrategy, equivalent [][]string) bool {
	if u.URI == "" || target == "" {
		return false
	}
	strategy := defaultMatch
	if u.Match != nil {
		strategy = *u.Match
	}

	switch strategy {
	case types.UriMatchDomain:
		return domainMatches(u.URI, target, equivalent)
	case types.UriMatchHost:
		host := hostOf(target)
		return host != "" && host == hostOf(u.URI)
	case types.UriMatchExact:
		return target == u.URI
	case types.UriMatchStartsWith:
		return strings.HasPrefix(target, u.URI)
	case types.UriMatchRegularExpression:
		re, err := regexp.Compile("(?i)" + u.URI)
		if err != nil {
			return false
		}
		return re.MatchString(target)
	default:
		return false
	}
}

func domainMatches(saved, target string, equivalent [][]string) bool {
	savedDomain := domainOf(saved)
	targetDomain := domainOf(target)
	if savedDomain == "" || targetDomain == "" {
		return false
	}

	matchDomains := []string{targetDomain}
	for _, group := range equivalent {
		if slices.Contains(group, targetDomain) {
			matchDomains = append(matchDomains, group...)
		}
	}
	if !slices.Contains(matchDomains, savedDomain) {
		return false
	}

	if blocked, ok := domainMatchBlacklist[savedDomain]; ok {
		return !slices.Contains(blocked, hostOf(target))
	}
	return true
}

func parseURL(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

// hostOf returns the lowercase host, port included.
func hostOf(raw string) string {
	u := parseURL(raw)
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// domainOf returns the registrable domain of the URL, or its hostname for
// IP addresses and single-label hosts.
func domainOf(raw string) string {
	u := parseURL(raw)
	if u == nil {
		return ""
	}
	hostname := strings.ToLower(u.Hostname())
	if net.ParseIP(hostname) != nil || !strings.Contains(hostname, ".") {
		return hostname
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return hostname
	}
	return domain
}
