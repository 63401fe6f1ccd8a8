package domain

import "time"

// User is the storefront's row for a signed-in identity in the users table.
type User struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerk_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is the signed-in caller as returned by the account endpoint.
type Account struct {
	Subject string `json:"subject"`
	Email   string `json:"email,omitempty"`
	User    User   `json:"user"`
}
