package cmd

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skiff-browser/skiff/internal/cli/styles"
	"github.com/skiff-browser/skiff/internal/storage"
)

func TestVisitsJSONShape(t *testing.T) {
	when := time.Date(2026, 8, 22, 10, 15, 0, 0, time.UTC)
	visits := []storage.Visit{
		{Url: "https://go.dev/", Title: sql.NullString{String: "The Go Programming Language", Valid: true}, VisitCount: 7, LastVisited: when},
		{Url: "https://example.com/", VisitCount: 1, LastVisited: when},
	}

	entries := visitsJSON(visits)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://go.dev/", entries[0].URL)
	assert.Equal(t, "The Go Programming Language", entries[0].Title)
	assert.EqualValues(t, 7, entries[0].VisitCount)
	assert.Empty(t, entries[1].Title)
}

func TestVisitLineFallsBackToURL(t *testing.T) {
	theme := styles.NewTheme()
	v := storage.Visit{Url: "https://example.com/", VisitCount: 3, LastVisited: time.Now()}

	line := visitLine(theme, &v)
	assert.Contains(t, line, "https://example.com/")
	assert.Contains(t, line, "3 visits")
}

func TestVisitLineShowsTitle(t *testing.T) {
	theme := styles.NewTheme()
	v := storage.Visit{
		Url:         "https://go.dev/",
		Title:       sql.NullString{String: "  The Go Programming Language  ", Valid: true},
		VisitCount:  1,
		LastVisited: time.Now(),
	}

	line := visitLine(theme, &v)
	assert.Contains(t, line, "The Go Programming Language")
	assert.Contains(t, line, "1 visit")
}
