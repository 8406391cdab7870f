package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	repo "github.com/oksasatya/juicyplanet/internal/domain/repository"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
)

const CheckEmailRedirect = "/check-email"

// AuthService runs registration, email verification and login
type AuthService struct {
	Users      repo.UserRepository
	Tokens     repo.EmailTokenRepository
	Issuer     *Issuer
	Mail       mailer.Dispatcher
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	BcryptCost int
	Now        func() time.Time
}

func NewAuthService(users repo.UserRepository, tokens repo.EmailTokenRepository, issuer *Issuer, mail mailer.Dispatcher, jwt *helpers.JWTManager, logger *logrus.Logger, bcryptCost int) *AuthService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &AuthService{
		Users:      users,
		Tokens:     tokens,
		Issuer:     issuer,
		Mail:       mail,
		JWT:        jwt,
		Logger:     logger,
		BcryptCost: bcryptCost,
		Now:        time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Phone    string
}

type RegisterResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Session is a signed token plus the profile it was issued for
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      entity.Profile `json:"user"`
}

type VerifyResult struct {
	Message         string
	AutoLogin       bool
	AlreadyVerified bool
	Session         *Session
	// ClearPending is set when the pending-verification cookie was consumed
	ClearPending bool
}

type LoginResult struct {
	Session *Session
	// Pending is set for unverified accounts; no session is issued then
	Pending bool
	UserID  string
	Email   string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *AuthService) now() time.Time { return s.Now().UTC() }

// Register creates an unverified user, issues a code and mails it. When the
// code or the email fails the user row stays; recovery is a resend.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fail(KindValidation, "email and password are required")
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return nil, fail(KindValidation, "password must be at most 72 bytes")
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, fail(KindConflict, "email already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, s.upstream("lookup user by email", err, logrus.Fields{"email": email})
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, s.upstream("hash password", err, nil)
	}

	u := &entity.User{
		Email:        email,
		Username:     optional(in.Username),
		Phone:        optional(in.Phone),
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsVerified:   false,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fail(KindConflict, "email, username or phone already registered")
		}
		return nil, s.upstream("create user", err, logrus.Fields{"email": email})
	}

	t, err := s.Issuer.Issue(ctx, u.ID)
	if err != nil {
		return nil, s.upstream("save verification code", err, logrus.Fields{"user_id": u.ID})
	}
	if err := s.dispatch(ctx, u, t); err != nil {
		return nil, err
	}

	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return &RegisterResult{UserID: u.ID, Email: u.Email}, nil
}

// SendVerificationEmail re-sends the active code, replacing it first when it
// is older than the resend interval or expired. It fails with NotFound when
// the user never got a code.
func (s *AuthService) SendVerificationEmail(ctx context.Context, userID, email string) (string, error) {
	u, err := s.pendingUser(ctx, userID, email)
	if err != nil {
		return "", err
	}
	if u.IsVerified {
		return "email already verified", nil
	}

	t, err := s.Issuer.Active(ctx, u.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", fail(KindNotFound, "verification token not found")
	}
	if err != nil {
		return "", s.upstream("load verification code", err, logrus.Fields{"user_id": u.ID})
	}
	if !s.Issuer.Fresh(t) {
		if t, err = s.Issuer.Issue(ctx, u.ID); err != nil {
			return "", s.upstream("save verification code", err, logrus.Fields{"user_id": u.ID})
		}
	}
	if err := s.dispatch(ctx, u, t); err != nil {
		return "", err
	}
	return "verification email sent", nil
}

// ResendOTP drops any old code and mails a new one
func (s *AuthService) ResendOTP(ctx context.Context, userID, email string) (string, error) {
	u, err := s.pendingUser(ctx, userID, email)
	if err != nil {
		return "", err
	}
	if u.IsVerified {
		return "email already verified", nil
	}
	t, err := s.Issuer.Issue(ctx, u.ID)
	if err != nil {
		return "", s.upstream("save verification code", err, logrus.Fields{"user_id": u.ID})
	}
	if err := s.dispatch(ctx, u, t); err != nil {
		return "", err
	}
	return "a new verification code has been sent", nil
}

// CheckStatus reports the verification flag. userID may be empty, then the
// user is looked up by email alone.
func (s *AuthService) CheckStatus(ctx context.Context, userID, email string) (bool, error) {
	u, err := s.pendingUser(ctx, userID, email)
	if err != nil {
		return false, err
	}
	return u.IsVerified, nil
}

// VerifyOTP confirms the user when code matches their active token.
// pendingUserID is the pending-verification cookie value, "" when absent.
func (s *AuthService) VerifyOTP(ctx context.Context, userID, email, code, pendingUserID string) (*VerifyResult, error) {
	code = strings.TrimSpace(code)
	if strings.TrimSpace(userID) == "" || code == "" {
		return nil, fail(KindValidation, "user_id and otp are required")
	}
	u, err := s.pendingUser(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	// the token row is gone after a successful confirmation, so the flag
	// decides a repeated submission
	if u.IsVerified {
		return &VerifyResult{Message: "email already verified", AlreadyVerified: true}, nil
	}

	t, err := s.Tokens.FindByUserAndCode(ctx, u.ID, code)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(KindInvalidCode, "invalid verification code")
	}
	if err != nil {
		return nil, s.upstream("load verification code", err, logrus.Fields{"user_id": u.ID})
	}
	return s.confirm(ctx, u, t, pendingUserID)
}

// VerifyLink confirms the owner of a link token
func (s *AuthService) VerifyLink(ctx context.Context, token, pendingUserID string) (*VerifyResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fail(KindValidation, "token is required")
	}
	t, err := s.Tokens.FindByCode(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(KindInvalidCode, "invalid or already used verification link")
	}
	if err != nil {
		return nil, s.upstream("load verification token", err, nil)
	}
	u, err := s.Users.GetByID(ctx, t.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(KindNotFound, "user not found")
	}
	if err != nil {
		return nil, s.upstream("lookup user", err, logrus.Fields{"user_id": t.UserID})
	}
	if u.IsVerified {
		return &VerifyResult{Message: "email already verified", AlreadyVerified: true}, nil
	}
	return s.confirm(ctx, u, t, pendingUserID)
}

func (s *AuthService) confirm(ctx context.Context, u *entity.User, t *entity.EmailToken, pendingUserID string) (*VerifyResult, error) {
	if t.Expired(s.now()) {
		return nil, fail(KindExpired, "verification code has expired")
	}
	if err := s.Tokens.ConfirmUser(ctx, u.ID); err != nil {
		return nil, s.upstream("confirm user", err, logrus.Fields{"user_id": u.ID})
	}
	u.IsVerified = true
	helpers.LogInfo(s.Logger, "email verified", logrus.Fields{"user_id": u.ID})

	if pendingUserID == "" || pendingUserID != u.ID {
		return &VerifyResult{Message: "email verified, please log in"}, nil
	}
	sess, err := s.session(u)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Message: "email verified", AutoLogin: true, Session: sess, ClearPending: true}, nil
}

// Login signs in by email, username or phone. A wrong password is checked
// before the verification flag so it never reveals account state.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fail(KindValidation, "identifier and password are required")
	}
	u, err := s.Users.GetByIdentifier(ctx, identifier)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, &Error{Kind: KindNotFound, Message: ErrInvalidCredentials.Message}
	}
	if err != nil {
		return nil, s.upstream("lookup user by identifier", err, nil)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !u.IsVerified {
		t, reused, err := s.Issuer.IssueOrReuse(ctx, u.ID)
		if err != nil {
			return nil, s.upstream("issue verification code", err, logrus.Fields{"user_id": u.ID})
		}
		if !reused {
			if err := s.dispatch(ctx, u, t); err != nil {
				return nil, err
			}
		}
		return &LoginResult{Pending: true, UserID: u.ID, Email: u.Email}, nil
	}

	sess, err := s.session(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: sess, UserID: u.ID, Email: u.Email}, nil
}

// Me returns the profile of an authenticated user
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(KindNotFound, "user not found")
	}
	if err != nil {
		return nil, s.upstream("lookup user", err, logrus.Fields{"user_id": userID})
	}
	p := u.Profile()
	return &p, nil
}

// pendingUser resolves the user a verification request refers to. A
// mismatching email is treated as an unknown user.
func (s *AuthService) pendingUser(ctx context.Context, userID, email string) (*entity.User, error) {
	userID = strings.TrimSpace(userID)
	email = NormalizeEmail(email)
	if userID == "" && email == "" {
		return nil, fail(KindValidation, "user_id or email is required")
	}

	var (
		u   *entity.User
		err error
	)
	if userID != "" {
		u, err = s.Users.GetByID(ctx, userID)
	} else {
		u, err = s.Users.GetByEmail(ctx, email)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(KindNotFound, "user not found")
	}
	if err != nil {
		return nil, s.upstream("lookup user", err, logrus.Fields{"user_id": userID})
	}
	if email != "" && u.Email != email {
		return nil, fail(KindNotFound, "user not found")
	}
	return u, nil
}

func (s *AuthService) session(u *entity.User) (*Session, error) {
	tok, exp, err := s.JWT.Sign(helpers.SessionClaims{ID: u.ID, Email: u.Email, Role: string(u.Role)})
	if err != nil {
		return nil, s.upstream("sign session token", err, logrus.Fields{"user_id": u.ID})
	}
	return &Session{Token: tok, ExpiresAt: exp, User: u.Profile()}, nil
}

func (s *AuthService) dispatch(ctx context.Context, u *entity.User, t *entity.EmailToken) error {
	job := s.Issuer.Delivery.Message(u, t)
	if err := s.Mail.Dispatch(ctx, job); err != nil {
		return s.upstream("send verification email", err, logrus.Fields{"user_id": u.ID, "template": job.Template})
	}
	return nil
}

func (s *AuthService) upstream(msg string, err error, fields logrus.Fields) error {
	helpers.LogError(s.Logger, msg+" failed", err, fields)
	return upstream(msg, err)
}
