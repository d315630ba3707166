package profile

import "time"

// Profile is a user profile row. Password never leaves the database layer.
type Profile struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Email     string    `json:"email,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Statistik summarizes a user's activity for the profile page.
type Statistik struct {
	Total       int `json:"total"`
	Didonasikan int `json:"didonasikan"`
	Diterima    int `json:"diterima"`
}
