// Package postpath turns router path segments into the lookup key used for
// both the CMS query and redirect destinations.
package postpath

import (
	"strings"

	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
)

const separator = "/"

// Normalize joins segments into a path with no leading or trailing slash.
// Slashes at the edges of each segment are dropped before joining.
func Normalize(segments []string) (string, error) {
	if len(segments) == 0 {
		return "", domain.ErrInvalidPath
	}

	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		s := strings.Trim(segment, separator)
		if strings.TrimSpace(s) == "" {
			return "", domain.ErrInvalidPath
		}
		cleaned = append(cleaned, s)
	}

	return strings.Join(cleaned, separator), nil
}

// Split breaks a router path such as "/2024/hello-world/" into segments.
// Only one layer of edge slashes is dropped so that "//a" keeps an empty
// leading segment and fails Normalize.
func Split(rawPath string) []string {
	p := strings.TrimPrefix(rawPath, separator)
	p = strings.TrimSuffix(p, separator)
	if p == "" {
		return nil
	}
	return strings.Split(p, separator)
}
