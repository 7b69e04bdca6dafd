package models

import "time"

// User is a stored account. PasswordHash never leaves the identity service.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
