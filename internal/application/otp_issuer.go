package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	repo "github.com/oksasatya/juicyplanet/internal/domain/repository"
)

const (
	DefaultOTPTTL         = 15 * time.Minute
	DefaultResendInterval = 2 * time.Minute
)

// Issuer mints and persists verification codes. TTL and ResendInterval are
// independent settings.
type Issuer struct {
	Tokens         repo.EmailTokenRepository
	Delivery       Delivery
	TTL            time.Duration
	ResendInterval time.Duration
	Now            func() time.Time
}

func NewIssuer(tokens repo.EmailTokenRepository, d Delivery, ttl, resendInterval time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	if resendInterval <= 0 {
		resendInterval = DefaultResendInterval
	}
	return &Issuer{Tokens: tokens, Delivery: d, TTL: ttl, ResendInterval: resendInterval, Now: time.Now}
}

func (i *Issuer) now() time.Time { return i.Now().UTC() }

// Issue replaces any token of userID with a fresh one
func (i *Issuer) Issue(ctx context.Context, userID string) (*entity.EmailToken, error) {
	code, err := i.Delivery.NewCode()
	if err != nil {
		return nil, err
	}
	now := i.now()
	t := &entity.EmailToken{UserID: userID, Code: code, CreatedAt: now, ExpiresAt: now.Add(i.TTL)}
	if err := i.Tokens.Replace(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Active returns the user's current token or repository.ErrNotFound
func (i *Issuer) Active(ctx context.Context, userID string) (*entity.EmailToken, error) {
	return i.Tokens.LatestByUser(ctx, userID)
}

// Fresh reports whether t is unexpired and younger than ResendInterval
func (i *Issuer) Fresh(t *entity.EmailToken) bool {
	now := i.now()
	return !t.Expired(now) && t.Age(now) < i.ResendInterval
}

// IssueOrReuse keeps an unexpired token younger than ResendInterval and
// replaces anything else. reused reports that no new code was minted, in
// which case the previous email is still the one to use.
func (i *Issuer) IssueOrReuse(ctx context.Context, userID string) (t *entity.EmailToken, reused bool, err error) {
	existing, err := i.Tokens.LatestByUser(ctx, userID)
	switch {
	case err == nil:
		if i.Fresh(existing) {
			return existing, true, nil
		}
	case !errors.Is(err, repo.ErrNotFound):
		return nil, false, err
	}
	t, err = i.Issue(ctx, userID)
	return t, false, err
}
