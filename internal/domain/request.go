package domain

import "net/url"

// RequestContext is everything the pipeline reads from one inbound request.
type RequestContext struct {
	// Segments are the path segments as the router produced them.
	Segments []string
	// Referrer is the raw Referer header; empty means absent.
	Referrer string
	// HasTracking reports a non-empty tracking query parameter.
	HasTracking bool
	// Query holds the raw query parameters.
	Query url.Values
}
