package allowlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllows(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		url      string
		want     bool
	}{
		{
			name:     "exact match",
			patterns: []string{"picsum.photos"},
			url:      "https://picsum.photos/800/600",
			want:     true,
		},
		{
			name:     "wildcard matches subdomain",
			patterns: []string{"*.example.com"},
			url:      "https://sub.example.com/x",
			want:     true,
		},
		{
			name:     "wildcard matches bare domain",
			patterns: []string{"*.example.com"},
			url:      "https://example.com/x",
			want:     true,
		},
		{
			name:     "wildcard matches deep subdomain",
			patterns: []string{"*.example.com"},
			url:      "https://a.b.example.com/x",
			want:     true,
		},
		{
			name:     "non-matching domain rejected",
			patterns: []string{"*.example.com"},
			url:      "https://evil.com/x",
			want:     false,
		},
		{
			name:     "suffix trick rejected",
			patterns: []string{"*.example.com"},
			url:      "https://notexample.com/x",
			want:     false,
		},
		{
			name:     "empty list allows all",
			patterns: []string{},
			url:      "https://anything.at.all/x",
			want:     true,
		},
		{
			name:     "case insensitive on both sides",
			patterns: []string{"  Picsum.Photos "},
			url:      "https://PICSUM.photos/1",
			want:     true,
		},
		{
			name:     "multiple entries OR together",
			patterns: []string{"a.com", "b.com"},
			url:      "https://b.com/img.png",
			want:     true,
		},
		{
			name:     "unparseable url fails closed",
			patterns: []string{"example.com"},
			url:      "://not-a-url",
			want:     false,
		},
		{
			name:     "url without host fails closed",
			patterns: []string{"example.com"},
			url:      "just-some-text",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.patterns)

			assert.Equal(t, tt.want, l.Allows(tt.url))
		})
	}
}

func TestFromEnv(t *testing.T) {
	l := FromEnv("picsum.photos, *.example.com ,,")

	assert.False(t, l.Empty())
	assert.True(t, l.Allows("https://picsum.photos/1"))
	assert.True(t, l.Allows("https://cdn.example.com/1"))
	assert.False(t, l.Allows("https://other.org/1"))
}

func TestFromEnvEmptyValue(t *testing.T) {
	l := FromEnv("")

	assert.True(t, l.Empty())
	assert.True(t, l.Allows("https://anything.com/x"))
}
