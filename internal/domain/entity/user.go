package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and must never be serialized to clients.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
