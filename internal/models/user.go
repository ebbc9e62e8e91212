package models

// UserRole distinguishes regular traders from admins.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User is an authorized trader profile.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Role       UserRole `json:"role"`
	Location   string   `json:"location"`
	State      string   `json:"state"`
	Country    string   `json:"country"`
	IsVerified bool     `json:"is_verified"`
	Email      string   `json:"email,omitempty"`
	AvatarURL  string   `json:"avatar_url,omitempty"`
}

// UserPatch carries profile edits; nil fields are left untouched.
// Listings and chat sessions keep the seller snapshot taken at creation,
// so a patch never rewrites history.
type UserPatch struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// PendingUser is a signup request waiting for manual approval.
type PendingUser struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}
