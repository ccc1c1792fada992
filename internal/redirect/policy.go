// Package redirect decides whether a request is sent to the CMS origin
// instead of being rendered here.
package redirect

import (
	"net/url"
	"strings"

	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
)

// DefaultReferrerDomains are the referrer substrings that trigger a redirect.
var DefaultReferrerDomains = []string{"facebook.com"}

const (
	graphqlSegment = "/graphql/"
	graphqlSuffix  = "/graphql"
)

// Policy is the referrer and tracking-parameter heuristic.
type Policy struct {
	base            string
	referrerDomains []string
}

// NewPolicy builds a policy whose destinations live under the origin of the
// CMS GraphQL endpoint. An empty referrerDomains uses DefaultReferrerDomains.
func NewPolicy(endpoint string, referrerDomains []string) *Policy {
	if len(referrerDomains) == 0 {
		referrerDomains = DefaultReferrerDomains
	}
	domains := make([]string, 0, len(referrerDomains))
	for _, d := range referrerDomains {
		if d != "" {
			domains = append(domains, d)
		}
	}
	return &Policy{
		base:            BaseURL(endpoint),
		referrerDomains: domains,
	}
}

// Decide returns a redirect when the referrer contains a configured domain or
// the request carries a tracking parameter. path must already be normalized.
func (p *Policy) Decide(rc domain.RequestContext, path string) (domain.Redirect, bool) {
	if !rc.HasTracking && !p.socialReferrer(rc.Referrer) {
		return domain.Redirect{}, false
	}
	return domain.Redirect{
		Destination: p.Destination(path),
		Permanent:   false,
	}, true
}

// Destination returns the CMS-origin URL for a normalized path.
func (p *Policy) Destination(path string) string {
	return p.base + (&url.URL{Path: path}).EscapedPath()
}

func (p *Policy) socialReferrer(referrer string) bool {
	if referrer == "" {
		return false
	}
	for _, d := range p.referrerDomains {
		if strings.Contains(referrer, d) {
			return true
		}
	}
	return false
}

// BaseURL derives the site origin from a GraphQL endpoint. The first
// "/graphql/" becomes "/", a trailing "/graphql" becomes "/", and the result
// always ends in a slash.
func BaseURL(endpoint string) string {
	switch {
	case strings.Contains(endpoint, graphqlSegment):
		return strings.Replace(endpoint, graphqlSegment, "/", 1)
	case strings.HasSuffix(endpoint, graphqlSuffix):
		return strings.TrimSuffix(endpoint, graphqlSuffix) + "/"
	case strings.HasSuffix(endpoint, "/"):
		return endpoint
	default:
		return endpoint + "/"
	}
}
