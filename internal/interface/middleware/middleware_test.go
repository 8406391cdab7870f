package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":    c.GetString(CtxUserIDKey),
		"email": c.GetString(CtxUserEmailKey),
		"role":  c.GetString(CtxUserRoleKey),
		"ip":    c.GetString("real_ip"),
	})
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.GET("/me", Auth(jwt), whoami)
	r.GET("/admin", Auth(jwt), RequireRole(entity.RoleAdmin), whoami)

	userTok, _, err := jwt.Sign(helpers.SessionClaims{ID: "u1", Email: "a@x.com", Role: "user"})
	require.NoError(t, err)
	adminTok, _, err := jwt.Sign(helpers.SessionClaims{ID: "u2", Email: "admin@x.com", Role: "admin"})
	require.NoError(t, err)
	foreign, _, err := helpers.NewJWTManager("other", time.Hour).Sign(helpers.SessionClaims{ID: "u1", Role: "admin"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "/me", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "/me", "Bearer " + userTok, http.StatusOK},
		{"lowercase scheme", "/me", "bearer " + userTok, http.StatusOK},
		{"user on admin route", "/admin", "Bearer " + userTok, http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + adminTok, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestAuth_SetsContext(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.GET("/me", Auth(jwt), whoami)
	tok, _, err := jwt.Sign(helpers.SessionClaims{ID: "u1", Email: "a@x.com", Role: "user"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.JSONEq(t, `{"id":"u1","email":"a@x.com","role":"user","ip":""}`, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP())
	r.POST("/login", RateLimit(rdb, 2, time.Minute, KeyByIPAndPath(), nil), whoami)

	hit := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit("203.0.113.7").Code)
	w := hit("203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit("203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, http.StatusOK, hit("198.51.100.2").Code, "other clients keep their budget")

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit("203.0.113.7").Code, "window resets")
}

func TestRateLimit_AllowAndFailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP())
	r.GET("/x", RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()), whoami)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.10")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	mr.Close()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "redis outage does not block traffic")
}

func TestRealIPAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RealIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("real_ip")+"|"+c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "2001:db8::1")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	r.ServeHTTP(w, req)

	ip, id, _ := strings.Cut(w.Body.String(), "|")
	assert.Equal(t, "2001:db8::1", ip)
	assert.NotEqual(t, "not-a-uuid", id)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

