package postpath_test

import (
	"strings"
	"testing"

	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/postpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		segments []string
		want     string
		wantErr  bool
	}{
		{name: "two segments", segments: []string{"2024", "hello-world"}, want: "2024/hello-world"},
		{name: "single segment", segments: []string{"about"}, want: "about"},
		{name: "edge slashes trimmed", segments: []string{"/2024/", "/hello-world/"}, want: "2024/hello-world"},
		{name: "empty list", segments: nil, wantErr: true},
		{name: "empty segment", segments: []string{"2024", ""}, wantErr: true},
		{name: "whitespace segment", segments: []string{"  "}, wantErr: true},
		{name: "slash-only segment", segments: []string{"//"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := postpath.Normalize(tc.segments)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPath)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_NoEdgeSlashes(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"a"},
		{"/a", "b/"},
		{"a/", "/b/", "c"},
		{"2024", "03", "post-title"},
	}

	for _, segments := range inputs {
		got, err := postpath.Normalize(segments)
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(got, "/"), got)
		assert.False(t, strings.HasSuffix(got, "/"), got)
	}
}

func TestNormalize_RoundTripsThroughSplit(t *testing.T) {
	t.Parallel()

	segments := []string{"2024", "hello-world"}
	joined, err := postpath.Normalize(segments)
	require.NoError(t, err)

	assert.Equal(t, segments, postpath.Split(joined))

	again, err := postpath.Normalize(postpath.Split(joined))
	require.NoError(t, err)
	assert.Equal(t, joined, again)
}

func TestSplit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"2024", "hello-world"}, postpath.Split("/2024/hello-world/"))
	assert.Equal(t, []string{"missing"}, postpath.Split("/missing"))
	assert.Nil(t, postpath.Split("/"))
	assert.Nil(t, postpath.Split(""))

	// Inner empty segments survive so Normalize can reject them.
	_, err := postpath.Normalize(postpath.Split("/a//b"))
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}
