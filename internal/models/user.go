// Package models provides data models for the QR tracker system.
package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt
// hashes and never serialized into API responses.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
