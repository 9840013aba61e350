package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleBorrower = "BORROWER"
)

// User representa una cuenta del sistema de préstamos.
// Password es opaco: se conserva tal como llega y nunca se presenta en tablas.
type User struct {
	ID        string     `json:"userId" validate:"required"`
	Username  string     `json:"username" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	Number    string     `json:"number"`
	Password  string     `json:"password"`
	Role      string     `json:"role" validate:"user_role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// IsAdmin indica si el usuario tiene rol ADMIN.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
