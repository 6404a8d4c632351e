package models

import "time"

// GoogleToken is the persisted form of the delegated-authorization
// context granted by the OAuth flow. A single row holds the current
// token; refreshing overwrites it in place.
type GoogleToken struct {
	ID           int64     `json:"id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes"`
	UpdatedAt    time.Time `json:"updated_at"`
}
