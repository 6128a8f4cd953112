package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homehub/models"
)

func TestProperties(t *testing.T) {
	props, err := Properties()
	require.NoError(t, err)
	require.NotEmpty(t, props)

	seen := map[int]bool{}
	for _, p := range props {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.Contains(t, models.Categories, p.Type, "listing %d", p.ID)
		assert.NotEmpty(t, p.Agent.ContactNumber)
	}
}

func TestSeedUsers(t *testing.T) {
	users, err := SeedUsers()
	require.NoError(t, err)
	for _, u := range users {
		assert.NotEmpty(t, u.Username)
		assert.NotEmpty(t, u.Email)
		assert.GreaterOrEqual(t, len(u.Password), 6)
	}
}
