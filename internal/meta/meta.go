// Package meta builds the Open Graph and article metadata for a post page.
package meta

import (
	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/sanitize"
)

// Property names emitted by Build, in emission order.
const (
	PropTitle         = "og:title"
	PropDescription   = "og:description"
	PropType          = "og:type"
	PropLocale        = "og:locale"
	PropSiteName      = "og:site_name"
	PropPublishedTime = "article:published_time"
	PropModifiedTime  = "article:modified_time"
	PropImage         = "og:image"
	PropImageAlt      = "og:image:alt"
)

const articleType = "article"

// Site holds the per-deployment constants that appear in every page.
type Site struct {
	Locale string
	Name   string
}

// Tag is one <meta property content> pair.
type Tag struct {
	Property string
	Content  string
}

// Build returns the metadata tags for record in a fixed order. Image tags
// are present only when the record has a featured image.
func Build(record *domain.ContentRecord, site Site) []Tag {
	tags := []Tag{
		{Property: PropTitle, Content: record.Title},
		{Property: PropDescription, Content: sanitize.Excerpt(record.Excerpt)},
		{Property: PropType, Content: articleType},
		{Property: PropLocale, Content: site.Locale},
		{Property: PropSiteName, Content: site.Name},
		{Property: PropPublishedTime, Content: record.Published.String()},
		{Property: PropModifiedTime, Content: record.Modified.String()},
	}

	if record.FeaturedImage != nil {
		tags = append(tags,
			Tag{Property: PropImage, Content: record.FeaturedImage.URL},
			Tag{Property: PropImageAlt, Content: ImageAlt(record)},
		)
	}

	return tags
}

// ImageAlt returns the featured image alt text, falling back to the title.
func ImageAlt(record *domain.ContentRecord) string {
	if record.FeaturedImage != nil && record.FeaturedImage.AltText != "" {
		return record.FeaturedImage.AltText
	}
	return record.Title
}

// Lookup returns the content of the first tag with the given property.
func Lookup(tags []Tag, property string) (string, bool) {
	for _, tag := range tags {
		if tag.Property == property {
			return tag.Content, true
		}
	}
	return "", false
}
