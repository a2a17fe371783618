package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleCashier  = "cajero"
	RoleOperator = "operario"
)

// User usuario del sistema (login con email y contraseña, hash bcrypt).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
