package models

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// User is an API consumer identified by an API key rather than a login.
type User struct {
	ID            string    `json:"id" badgerhold:"key"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	APIKey        string    `json:"api_key"`
	IsAPIActive   bool      `json:"is_api_active"`
	CreatedAt     time.Time `json:"created_at"`
	LastAPIAccess time.Time `json:"last_api_access"`
}

// GenerateAPIKey returns a new URL-safe random API key.
func GenerateAPIKey() string {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
