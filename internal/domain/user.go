package domain

import "time"

// User is the local record for an authenticated principal. Identity itself
// lives with the external provider; Subject is the provider's opaque id.
type User struct {
	ID        int32     `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Staff     bool      `json:"staff"`
	CreatedOn time.Time `json:"created_on"`
}

// Actor identifies who is performing an operation. Claims come from the
// identity provider token and are trusted as-is.
type Actor struct {
	UserID  int32  `json:"user_id"`
	Subject string `json:"subject"`
	Staff   bool   `json:"staff"`
}
