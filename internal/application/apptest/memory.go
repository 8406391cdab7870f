// Package apptest holds in-memory repositories and a capturing mail
// dispatcher for service and handler tests.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	repo "github.com/oksasatya/juicyplanet/internal/domain/repository"
	"github.com/oksasatya/juicyplanet/pkg/mailer"
)

// Clock is a manually advanced time source
type Clock struct{ t time.Time }

func NewClock() *Clock { return &Clock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)} }
func (c *Clock) Now() time.Time { return c.t }
func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type Users struct {
	mu   sync.Mutex
	rows map[string]*entity.User
}

func NewUsers() *Users { return &Users{rows: map[string]*entity.User{}} }

func (m *Users) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == u.Email || sameOptional(r.Username, u.Username) || sameOptional(r.Phone, u.Phone) {
			return repo.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

// sameOptional mirrors a nullable unique column: NULLs never collide
func sameOptional(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func (m *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *Users) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == strings.ToLower(strings.TrimSpace(identifier)) ||
			(u.Username != nil && *u.Username == identifier) ||
			(u.Phone != nil && *u.Phone == identifier) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *Users) Verified(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id].IsVerified
}

type Tokens struct {
	mu    sync.Mutex
	users *Users
	rows  []entity.EmailToken
	Err   error
}

// NewTokens confirms users in the given Users store
func NewTokens(users *Users) *Tokens { return &Tokens{users: users} }

func (m *Tokens) Replace(_ context.Context, t *entity.EmailToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != t.UserID {
			kept = append(kept, r)
		}
	}
	t.ID = uuid.NewString()
	m.rows = append(kept, *t)
	return nil
}

func (m *Tokens) LatestByUser(_ context.Context, userID string) (*entity.EmailToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found []entity.EmailToken
	for _, r := range m.rows {
		if r.UserID == userID {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return nil, repo.ErrNotFound
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return &found[0], nil
}

func (m *Tokens) FindByUserAndCode(_ context.Context, userID, code string) (*entity.EmailToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.UserID == userID && r.Code == code {
			cp := r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *Tokens) FindByCode(_ context.Context, code string) (*entity.EmailToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Code == code {
			cp := r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *Tokens) ConfirmUser(_ context.Context, userID string) error {
	m.users.mu.Lock()
	u, ok := m.users.rows[userID]
	if ok {
		u.IsVerified = true
	}
	m.users.mu.Unlock()
	if !ok {
		return repo.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *Tokens) Count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.UserID == userID {
			n++
		}
	}
	return n
}

// Mail records dispatched jobs; a non-nil Err fails every dispatch
type Mail struct {
	mu   sync.Mutex
	Jobs []mailer.EmailJob
	Err  error
}

func (c *Mail) Dispatch(_ context.Context, job mailer.EmailJob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Jobs = append(c.Jobs, job)
	return nil
}

// Codes returns the OTP of every captured job, "" for non-OTP jobs
func (c *Mail) Codes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.Jobs))
	for _, j := range c.Jobs {
		code, _ := j.Data["Code"].(string)
		out = append(out, code)
	}
	return out
}

func (c *Mail) Last() mailer.EmailJob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Jobs[len(c.Jobs)-1]
}

type Testimonials struct {
	mu   sync.Mutex
	rows []entity.Testimonial
}

func (m *Testimonials) List(_ context.Context, limit int) ([]entity.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) < limit {
		limit = len(m.rows)
	}
	return append([]entity.Testimonial{}, m.rows[:limit]...), nil
}

func (m *Testimonials) GetByID(_ context.Context, id string) (*entity.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *Testimonials) Create(_ context.Context, t *entity.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	m.rows = append(m.rows, *t)
	return nil
}

func (m *Testimonials) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.rows {
		if t.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *Testimonials) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
