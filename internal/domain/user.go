package domain

import "time"

type UserRole string

const (
	RoleClient       UserRole = "client"
	RolePhotographer UserRole = "photographer"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity attached to every request by the
// auth middleware. Lifecycle operations take it explicitly instead of
// reading user_id/role out of the gin context.
type Actor struct {
	UserID int64
	Role   UserRole
}

func (a Actor) IsPhotographer() bool { return a.Role == RolePhotographer }
func (a Actor) IsClient() bool       { return a.Role == RoleClient }
