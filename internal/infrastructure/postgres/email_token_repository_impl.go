package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	"github.com/oksasatya/juicyplanet/internal/domain/repository"
)

type EmailTokenRepository struct {
	db DB
}

func NewEmailTokenRepository(db DB) *EmailTokenRepository {
	return &EmailTokenRepository{db: db}
}

const tokenColumns = `id, user_id, code, created_at, expires_at`

func scanToken(row pgx.Row) (*entity.EmailToken, error) {
	t := &entity.EmailToken{}
	if err := row.Scan(&t.ID, &t.UserID, &t.Code, &t.CreatedAt, &t.ExpiresAt); err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

// Replace runs delete-then-insert in one transaction so a failure never
// leaves the user without a token.
func (r *EmailTokenRepository) Replace(ctx context.Context, t *entity.EmailToken) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM email_tokens WHERE user_id = $1`, t.UserID); err != nil {
			return err
		}
		row := tx.QueryRow(ctx, `
			INSERT INTO email_tokens (user_id, code, created_at, expires_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, t.UserID, t.Code, t.CreatedAt, t.ExpiresAt)
		return mapErr(row.Scan(&t.ID))
	})
}

func (r *EmailTokenRepository) LatestByUser(ctx context.Context, userID string) (*entity.EmailToken, error) {
	return scanToken(r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM email_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID))
}

func (r *EmailTokenRepository) FindByUserAndCode(ctx context.Context, userID, code string) (*entity.EmailToken, error) {
	return scanToken(r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM email_tokens
		WHERE user_id = $1 AND code = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, code))
}

func (r *EmailTokenRepository) FindByCode(ctx context.Context, code string) (*entity.EmailToken, error) {
	return scanToken(r.db.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM email_tokens
		WHERE code = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, code))
}

// ConfirmUser flips the verification flag and consumes the user's tokens atomically
func (r *EmailTokenRepository) ConfirmUser(ctx context.Context, userID string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET is_verified = true, updated_at = now() WHERE id = $1`, userID)
		if err != nil {
			return mapErr(err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		_, err = tx.Exec(ctx, `DELETE FROM email_tokens WHERE user_id = $1`, userID)
		return err
	})
}

var _ repository.EmailTokenRepository = (*EmailTokenRepository)(nil)
