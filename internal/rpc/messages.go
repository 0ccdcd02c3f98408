// Package rpc declares the gallery gRPC service: its messages, the JSON
// codec they travel in, the service descriptor and a client.
package rpc

import "time"

type Empty struct{}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expiresIn"`
}

type Drawing struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Content   string    `json:"dataUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListDrawingsResponse struct {
	Drawings []*Drawing `json:"drawings"`
}

type GetDrawingRequest struct {
	ID string `json:"id"`
}

type SaveDrawingRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Content string `json:"dataUrl"`
}

type SaveDrawingResponse struct {
	Drawing *Drawing `json:"drawing"`
	Created bool     `json:"created"`
}

type PingResponse struct {
	Status string `json:"status"`
}
