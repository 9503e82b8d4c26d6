package models

import "time"

// User is an account that can authenticate against the API
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the body of register and token requests
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
