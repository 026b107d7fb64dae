package models

import "time"

// AdminRole separates full managers from day staff.
type AdminRole string

const (
	AdminRoleAdmin   AdminRole = "admin"
	AdminRoleManager AdminRole = "manager"
)

// AdminUser is a dashboard account stored in the flat admin-users file.
// Passwords are stored as-is to stay compatible with existing data files;
// they are stripped from every API response.
type AdminUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Name      string     `json:"name"`
	Role      AdminRole  `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Public returns a copy safe to serialize in responses.
func (u *AdminUser) Public() AdminUserView {
	return AdminUserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// AdminUserView is AdminUser without the password field.
type AdminUserView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      AdminRole  `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// LoginRequest is the payload for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSession is returned on login; Token is a signed JWT the dashboard
// presents back on session checks.
type AdminSession struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       AdminRole `json:"role"`
	LoggedInAt time.Time `json:"logged_in_at"`
	Token      string    `json:"token"`
}

// CheckSessionRequest is the payload for POST /api/admin/check-session.
type CheckSessionRequest struct {
	Token string `json:"token" binding:"required"`
}
