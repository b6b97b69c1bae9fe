package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterActiveChen(t *testing.T) {
	all := []Fields{
		{Name: "Maya Chen", Program: "Leadership", Status: "active"},
		{Name: "Lee Chen", Program: "Career", Status: "paused"},
		{Name: "Ana Silva", Program: "Chen Executive Track", Status: "active"},
		{Name: "Omar Reyes", Program: "Leadership", Status: "active"},
	}
	self := func(f Fields) Fields { return f }

	got := Apply(all, Filter{Search: "chen", Statuses: []string{"active"}}, self)
	require.Len(t, got, 2)
	assert.Equal(t, "Maya Chen", got[0].Name)
	assert.Equal(t, "Ana Silva", got[1].Name)

	got = Apply(all, Filter{Programs: []string{"leadership", "career"}}, self)
	assert.Len(t, got, 3)

	got = Apply(all, Filter{}, self)
	assert.Equal(t, all, got)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, st)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}
