package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	repo "github.com/oksasatya/juicyplanet/internal/domain/repository"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

type TestimonialService struct {
	Repo   repo.TestimonialRepository
	Logger *logrus.Logger
}

func NewTestimonialService(r repo.TestimonialRepository, logger *logrus.Logger) *TestimonialService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &TestimonialService{Repo: r, Logger: logger}
}

type CreateTestimonialInput struct {
	Author  string
	Message string
	Rating  int
}

func (s *TestimonialService) List(ctx context.Context, limit int) ([]entity.Testimonial, error) {
	limit, _ = pageBounds(limit, 0)
	items, err := s.Repo.List(ctx, limit)
	if err != nil {
		helpers.LogError(s.Logger, "list testimonials failed", err, nil)
		return nil, upstream("list testimonials", err)
	}
	return items, nil
}

func (s *TestimonialService) Create(ctx context.Context, userID string, in CreateTestimonialInput) (*entity.Testimonial, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, fail(KindValidation, "message is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fail(KindValidation, "rating must be between 1 and 5")
	}
	t := &entity.Testimonial{UserID: userID, Author: strings.TrimSpace(in.Author), Message: msg, Rating: in.Rating}
	if err := s.Repo.Create(ctx, t); err != nil {
		helpers.LogError(s.Logger, "create testimonial failed", err, logrus.Fields{"user_id": userID})
		return nil, upstream("create testimonial", err)
	}
	return t, nil
}

// Delete removes a testimonial; only its author may do so
func (s *TestimonialService) Delete(ctx context.Context, userID, id string) error {
	t, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return fail(KindNotFound, "testimonial not found")
	}
	if err != nil {
		helpers.LogError(s.Logger, "get testimonial failed", err, logrus.Fields{"testimonial_id": id})
		return upstream("get testimonial", err)
	}
	if t.UserID != userID {
		return fail(KindForbidden, "you can only delete your own testimonials")
	}
	if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, repo.ErrNotFound) {
		helpers.LogError(s.Logger, "delete testimonial failed", err, logrus.Fields{"testimonial_id": id})
		return upstream("delete testimonial", err)
	}
	return nil
}
