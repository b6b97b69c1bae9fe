package listfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name   string
		q      string
		fields []string
		want   bool
	}{
		{"blank matches", "  ", []string{"anything"}, true},
		{"case insensitive", "CHEN", []string{"Maya Chen"}, true},
		{"second field", "exec", []string{"Maya", "Executive coaching"}, true},
		{"no match", "zz", []string{"Maya", "Leadership"}, false},
		{"no fields", "a", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSearch(tt.q, tt.fields...))
		})
	}
}

func TestInSet(t *testing.T) {
	assert.True(t, InSet("active", nil))
	assert.True(t, InSet("active", []string{"paused", "Active"}))
	assert.False(t, InSet("completed", []string{"paused", "active"}))
}

func TestClean(t *testing.T) {
	got := Clean([]string{" Active ", "paused,active", "", ","})
	assert.Equal(t, []string{"active", "paused"}, got)
	assert.Nil(t, Clean(nil))
}

func TestCleanRepeatedKeepsCommas(t *testing.T) {
	got := CleanRepeated([]string{"Leadership, Executive", " leadership, executive ", "", "Career"})
	assert.Equal(t, []string{"leadership, executive", "career"}, got)
	assert.True(t, InSet("Leadership, Executive", got))
}
