// Package data embeds the static listing catalog and the demo accounts the
// in-memory credential store starts with.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"homehub/models"
)

//go:embed properties.json
var propertiesJSON []byte

//go:embed users.json
var usersJSON []byte

// SeedUser is a demo account. Passwords are hashed when the repository loads them.
type SeedUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Properties decodes the embedded catalog.
func Properties() ([]models.Property, error) {
	var props []models.Property
	if err := json.Unmarshal(propertiesJSON, &props); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return props, nil
}

// SeedUsers decodes the embedded demo accounts.
func SeedUsers() ([]SeedUser, error) {
	var users []SeedUser
	if err := json.Unmarshal(usersJSON, &users); err != nil {
		return nil, fmt.Errorf("decode seed users: %w", err)
	}
	return users, nil
}
