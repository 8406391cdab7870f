package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/juicyplanet/config"
	"github.com/oksasatya/juicyplanet/internal/application"
	"github.com/oksasatya/juicyplanet/internal/application/apptest"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
	"github.com/oksasatya/juicyplanet/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]any    `json:"data"`
	Error   map[string]string `json:"error"`
}

type testAPI struct {
	r      *gin.Engine
	mail   *apptest.Mail
	users  *apptest.Users
	tokens *apptest.Tokens
	jwt    *helpers.JWTManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	users := apptest.NewUsers()
	tokens := apptest.NewTokens(users)
	mail := &apptest.Mail{}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	issuer := application.NewIssuer(tokens, application.OTPDelivery{}, 15*time.Minute, 2*time.Minute)
	auth := NewAuthHandler(application.NewAuthService(users, tokens, issuer, mail, jwt, nil, 4), helpers.NewCookie("", false), 15*time.Minute)
	testimonials := NewTestimonialHandler(application.NewTestimonialService(&apptest.Testimonials{}, nil))
	payments := NewPaymentHandler(application.NewPaymentService(nil))

	r := gin.New()
	u := r.Group("/api/user")
	u.POST("/register", auth.Register)
	u.POST("/send-verification-email", auth.SendVerificationEmail)
	u.POST("/check-verification-status", auth.CheckStatus)
	u.POST("/verify-otp", auth.VerifyOTP)
	u.GET("/verify-email/:token", auth.VerifyLink)
	u.POST("/resend-otp", auth.ResendOTP)
	u.POST("/login", auth.Login)
	u.GET("/me", middleware.Auth(jwt), auth.Me)

	r.POST("/api/testimonials", middleware.Auth(jwt), testimonials.Create)
	r.DELETE("/api/testimonials/:id", middleware.Auth(jwt), testimonials.Delete)
	r.POST("/api/payments/mobile-money", middleware.Auth(jwt), payments.MobileMoney)

	return &testAPI{r: r, mail: mail, users: users, tokens: tokens, jwt: jwt}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, mods ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mods {
		m(req)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func withCookie(c *http.Cookie) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(c) }
}

func withBearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func pendingCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.PendingVerificationCookie {
			return c
		}
	}
	return nil
}

func TestRegisterVerifyLoginOverHTTP(t *testing.T) {
	a := newTestAPI(t)

	w, env := a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	userID, _ := env.Data["user_id"].(string)
	require.NotEmpty(t, userID)
	assert.Equal(t, "a@x.com", env.Data["email"])

	cookie := pendingCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, userID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.InDelta(t, 900, cookie.MaxAge, 1)

	_, env = a.do(t, http.MethodPost, "/api/user/check-verification-status", gin.H{"user_id": userID, "email": "a@x.com"})
	assert.Equal(t, false, env.Data["verified"])

	code := a.mail.Codes()[0]
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	w, env = a.do(t, http.MethodPost, "/api/user/verify-otp", gin.H{"user_id": userID, "email": "a@x.com", "otp": wrong})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid verification code", env.Message)

	w, env = a.do(t, http.MethodPost, "/api/user/verify-otp", gin.H{"user_id": userID, "email": "a@x.com", "otp": code}, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, env.Data["autoLogin"])
	assert.NotEmpty(t, env.Data["token"])
	user, _ := env.Data["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, w.Body.String(), "password")
	cleared := pendingCookie(w)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
	assert.Zero(t, a.tokens.Count(userID))

	w, env = a.do(t, http.MethodPost, "/api/user/verify-otp", gin.H{"user_id": userID, "email": "a@x.com", "otp": code})
	assert.Equal(t, http.StatusOK, w.Code, "repeat submission is idempotent")
	assert.Equal(t, false, env.Data["autoLogin"])

	w, env = a.do(t, http.MethodPost, "/api/user/login", gin.H{"identifier": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok, _ := env.Data["token"].(string)
	require.NotEmpty(t, tok)
	assert.NotContains(t, env.Data, "redirect")

	w, env = a.do(t, http.MethodGet, "/api/user/me", nil, withBearer(tok))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, env.Data["id"])
	assert.Equal(t, "user", env.Data["role"])
}

func TestRegister_Failures(t *testing.T) {
	a := newTestAPI(t)

	w, env := a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is required", env.Error["password"])

	w, _ = a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	w, env = a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already registered", env.Message)

	w, env = a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "b@x.com", "password": strings.Repeat("é", 40)})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "password must be at most 72 bytes", env.Message)
}

func TestUnknownUserIDIsNotFound(t *testing.T) {
	a := newTestAPI(t)

	for _, path := range []string{"/api/user/check-verification-status", "/api/user/send-verification-email", "/api/user/resend-otp"} {
		w, env := a.do(t, http.MethodPost, path, gin.H{"user_id": "abc", "email": "a@x.com"})
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.NotEqual(t, "internal server error", env.Message, path)
	}
	w, _ := a.do(t, http.MethodPost, "/api/user/verify-otp", gin.H{"user_id": "abc", "email": "a@x.com", "otp": "123456"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_StatusCodes(t *testing.T) {
	a := newTestAPI(t)
	w, env := a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := env.Data["user_id"]

	w, unknown := a.do(t, http.MethodPost, "/api/user/login", gin.H{"identifier": "b@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, bad := a.do(t, http.MethodPost, "/api/user/login", gin.H{"identifier": "a@x.com", "password": "nope123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, unknown.Message, bad.Message)
	assert.Equal(t, "invalid credentials", bad.Message)

	w, env = a.do(t, http.MethodPost, "/api/user/login", gin.H{"identifier": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "/check-email", env.Data["redirect"])
	assert.Equal(t, userID, env.Data["user_id"])
	assert.Equal(t, "a@x.com", env.Data["email"])
	assert.NotContains(t, env.Data, "token")
	assert.NotNil(t, pendingCookie(w), "unverified login re-arms the pending cookie")

	w, _ = a.do(t, http.MethodPost, "/api/user/login", gin.H{"identifier": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationEmailEndpoints(t *testing.T) {
	a := newTestAPI(t)
	_, env := a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com", "password": "secret1"})
	userID := env.Data["user_id"]

	w, env := a.do(t, http.MethodPost, "/api/user/send-verification-email", gin.H{"user_id": userID, "email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "verification email sent", env.Message)

	w, env = a.do(t, http.MethodPost, "/api/user/resend-otp", gin.H{"user_id": userID, "email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a new verification code has been sent", env.Message)
	assert.Len(t, a.mail.Jobs, 3)

	w, _ = a.do(t, http.MethodPost, "/api/user/send-verification-email", gin.H{"user_id": "missing", "email": "a@x.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = a.do(t, http.MethodGet, "/api/user/verify-email/unknown-token", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpstreamFailureIsGeneric(t *testing.T) {
	a := newTestAPI(t)
	a.tokens.Err = assert.AnError

	w, env := a.do(t, http.MethodPost, "/api/user/register", gin.H{"email": "a@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", env.Message)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestTestimonialDeleteIsOwnerOnly(t *testing.T) {
	a := newTestAPI(t)
	owner, _, err := a.jwt.Sign(helpers.SessionClaims{ID: "u1", Email: "ama@x.com", Role: "user"})
	require.NoError(t, err)
	other, _, err := a.jwt.Sign(helpers.SessionClaims{ID: "u2", Email: "kofi@x.com", Role: "user"})
	require.NoError(t, err)

	w, env := a.do(t, http.MethodPost, "/api/testimonials", gin.H{"message": "Best mango juice", "rating": 5}, withBearer(owner))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, _ := env.Data["id"].(string)
	assert.Equal(t, "ama@x.com", env.Data["author"], "author defaults to the session email")

	w, _ = a.do(t, http.MethodDelete, "/api/testimonials/"+id, nil, withBearer(other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = a.do(t, http.MethodDelete, "/api/testimonials/"+id, nil, withBearer(owner))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = a.do(t, http.MethodDelete, "/api/testimonials/"+id, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMobileMoneyStub(t *testing.T) {
	a := newTestAPI(t)
	tok, _, err := a.jwt.Sign(helpers.SessionClaims{ID: "u1", Email: "a@x.com", Role: "user"})
	require.NoError(t, err)

	w, env := a.do(t, http.MethodPost, "/api/payments/mobile-money",
		gin.H{"phone": "+233201234567", "amount": 2500, "order_ref": "ord-1"}, withBearer(tok))
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, "pending", env.Data["status"])
	assert.NotEmpty(t, env.Data["reference"])

	w, env = a.do(t, http.MethodPost, "/api/payments/mobile-money",
		gin.H{"phone": "0201234567", "amount": 0, "order_ref": "ord-1"}, withBearer(tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "phone")
	assert.Contains(t, env.Error, "amount")
}

func TestStatusOf(t *testing.T) {
	cases := map[application.Kind]int{
		application.KindValidation:   http.StatusBadRequest,
		application.KindConflict:     http.StatusConflict,
		application.KindNotFound:     http.StatusNotFound,
		application.KindUnauthorized: http.StatusUnauthorized,
		application.KindInvalidCode:  http.StatusBadRequest,
		application.KindExpired:      http.StatusBadRequest,
		application.KindForbidden:    http.StatusForbidden,
		application.KindUpstream:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusOf(&application.Error{Kind: kind}), kind.String())
	}
	assert.Equal(t, http.StatusInternalServerError, StatusOf(assert.AnError))
}

func TestAdminEmailSend(t *testing.T) {
	mail := &apptest.Mail{}
	cfg := &config.Config{MailSendEnabled: true}
	h := NewEmailHandler(mail, helpers.NopLogger(), cfg)
	a := &testAPI{r: gin.New()}
	a.r.POST("/api/admin/emails", h.Send)

	w, env := a.do(t, http.MethodPost, "/api/admin/emails", gin.H{"to": "ops@example.com", "subject": "Ping", "text": "hello"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, true, env.Data["sent"])
	require.Len(t, mail.Jobs, 1)
	assert.Equal(t, "Ping", mail.Jobs[0].Subject)

	w, _ = a.do(t, http.MethodPost, "/api/admin/emails", gin.H{"to": "ops@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "neither template nor body")

	w, _ = a.do(t, http.MethodPost, "/api/admin/emails", gin.H{"to": "ops@example.com", "template": "welcome"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown template")

	mail.Err = assert.AnError
	w, env = a.do(t, http.MethodPost, "/api/admin/emails", gin.H{"to": "ops@example.com", "template": "verify_otp", "data": gin.H{"Code": "123456"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to send email", env.Message)

	cfg.MailSendEnabled = false
	w, env = a.do(t, http.MethodPost, "/api/admin/emails", gin.H{"to": "ops@example.com", "subject": "Ping", "text": "hello"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, true, env.Data["disabled"])
}
