package user

import "time"

// User is an account created on first Google sign-in.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the identity reported by the sign-in provider.
type Profile struct {
	Email     string
	Name      string
	AvatarURL string
}
