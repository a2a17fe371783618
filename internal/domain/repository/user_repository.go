package repository

import "github.com/frutasur/empaque-api/internal/domain/entity"

// UserRepository acceso a usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
