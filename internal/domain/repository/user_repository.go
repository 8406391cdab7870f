package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByIdentifier matches email OR username OR phone
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}
