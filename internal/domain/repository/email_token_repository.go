package repository

import (
	"context"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
)

// EmailTokenRepository persists verification tokens. Replace and ConfirmUser
// are each atomic.
type EmailTokenRepository interface {
	// Replace deletes every token of t.UserID and inserts t
	Replace(ctx context.Context, t *entity.EmailToken) error
	// LatestByUser returns the newest token of the user
	LatestByUser(ctx context.Context, userID string) (*entity.EmailToken, error)
	FindByUserAndCode(ctx context.Context, userID, code string) (*entity.EmailToken, error)
	FindByCode(ctx context.Context, code string) (*entity.EmailToken, error)
	// ConfirmUser sets the verification flag and deletes the user's tokens
	ConfirmUser(ctx context.Context, userID string) error
}
