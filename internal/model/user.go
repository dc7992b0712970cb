package model

// User roles.
const (
	// RoleAdmin may add, delete, shut down and reactivate markers.
	RoleAdmin = "admin"
	// RoleUser has read-only access to the map and marker list.
	RoleUser = "user"
)

// User represents an account for authentication and role-based access control
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Role         string `json:"role" gorm:"size:20;not null;default:'user'"` // admin, user
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
