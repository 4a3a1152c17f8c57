package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skiff-browser/skiff/internal/storage"
)

func TestCanonicalizeVisitURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases scheme and host", "HTTPS://Example.COM/Path", "https://example.com/Path"},
		{"drops fragment", "https://example.com/docs#install", "https://example.com/docs"},
		{"trims trailing slash", "https://example.com/docs/", "https://example.com/docs"},
		{"root path collapses", "https://example.com/", "https://example.com"},
		{"strips utm params", "https://example.com/a?utm_source=x&utm_medium=y&id=1", "https://example.com/a?id=1"},
		{"strips click ids", "https://example.com/a?fbclid=zzz&gclid=yyy", "https://example.com/a"},
		{"keeps ordinary query", "https://example.com/search?q=go", "https://example.com/search?q=go"},
		{"blank input", "   ", ""},
		{"unparseable input trims slash", "http://%zz/", "http://%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.CanonicalizeVisitURL(tt.in))
		})
	}
}
