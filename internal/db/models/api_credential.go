package models

import "time"

// APICredential stores a client id/secret pair for an external service,
// keyed by service name.
type APICredential struct {
	ID           int64     `json:"id"`
	ServiceName  string    `json:"service_name"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
}
