package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchMatchIsNull(t *testing.T) {
	tests := []struct {
		name  string
		match SearchMatch
		want  bool
	}{
		{"zero value", SearchMatch{}, true},
		{"full info", SearchMatch{Current: 2, Total: 5}, false},
		{"total only", SearchMatch{Current: 0, Total: 5}, false},
		{"current only", SearchMatch{Current: 1, Total: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.IsNull())
		})
	}
}

func TestSearchMatchAtLimit(t *testing.T) {
	tests := []struct {
		name    string
		match   SearchMatch
		goingUp bool
		want    bool
	}{
		{"no info going down", SearchMatch{}, false, false},
		{"no info going up", SearchMatch{}, true, false},
		{"first match going up", SearchMatch{Current: 1, Total: 5}, true, true},
		{"first match going down", SearchMatch{Current: 1, Total: 5}, false, false},
		{"last match going down", SearchMatch{Current: 5, Total: 5}, false, true},
		{"last match going up", SearchMatch{Current: 5, Total: 5}, true, false},
		{"middle", SearchMatch{Current: 3, Total: 5}, false, false},
		{"single match up", SearchMatch{Current: 1, Total: 1}, true, true},
		{"single match down", SearchMatch{Current: 1, Total: 1}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.match.AtLimit(tt.goingUp))
		})
	}
}

func TestSearchMatchString(t *testing.T) {
	assert.Equal(t, "3/10", SearchMatch{Current: 3, Total: 10}.String())
}

func TestTabDataShouldShowIcon(t *testing.T) {
	d := &TabData{}
	assert.True(t, d.ShouldShowIcon("always"))
	assert.False(t, d.ShouldShowIcon("never"))
	assert.False(t, d.ShouldShowIcon("pinned"))

	d.Pinned = true
	assert.True(t, d.ShouldShowIcon("pinned"))
}

func TestClickTargetString(t *testing.T) {
	assert.Equal(t, "normal", TargetNormal.String())
	assert.Equal(t, "tab-bg", TargetTabBg.String())
	assert.Equal(t, "window", TargetWindow.String())
}
