// Package models defines server-side records persisted in the database.
package models

import "time"

// Account is a gallery user able to log in.
type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
