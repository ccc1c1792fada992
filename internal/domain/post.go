// Package domain holds the types shared by the resolve-decide-render pipeline.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// GMTLayout is the layout the CMS uses for dateGmt/modifiedGmt.
const GMTLayout = "2006-01-02T15:04:05"

// GMTTime is a CMS timestamp in UTC. It keeps the text the CMS sent so the
// value can be echoed verbatim into page metadata.
type GMTTime struct {
	time.Time
	raw string
}

// NewGMTTime parses s as a CMS timestamp.
func NewGMTTime(s string) (GMTTime, error) {
	if s == "" {
		return GMTTime{}, nil
	}
	for _, layout := range []string{GMTLayout, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return GMTTime{Time: t.UTC(), raw: s}, nil
		}
	}
	return GMTTime{}, fmt.Errorf("invalid GMT timestamp %q", s)
}

// UnmarshalJSON accepts a string or null.
func (t *GMTTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = GMTTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := NewGMTTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// String returns the timestamp exactly as the CMS sent it.
func (t GMTTime) String() string {
	return t.raw
}

// Image is a media reference with its alternative text.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// ContentRecord is one fetched post. It belongs to the request that fetched
// it and is never mutated after the fetcher returns it.
type ContentRecord struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Published     GMTTime `json:"published"`
	Modified      GMTTime `json:"modified"`
	Excerpt       string  `json:"excerpt"`
	AuthorName    string  `json:"author_name,omitempty"`
	FeaturedImage *Image  `json:"featured_image,omitempty"`
	MediaItems    []Image `json:"media_items,omitempty"`
}
