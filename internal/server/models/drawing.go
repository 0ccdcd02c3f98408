package models

import "time"

// Drawing is a named drawing owned by exactly one account. Content is an
// opaque payload, normally an image data URL.
type Drawing struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Content   string    `db:"data_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OwnedBy reports whether userID owns the drawing.
func (d *Drawing) OwnedBy(userID string) bool {
	return d != nil && userID != "" && d.UserID == userID
}
