package repository

import (
	"context"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
)

type ProductRepository interface {
	List(ctx context.Context, f entity.ProductFilter) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	SetImageURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

type TestimonialRepository interface {
	List(ctx context.Context, limit int) ([]entity.Testimonial, error)
	GetByID(ctx context.Context, id string) (*entity.Testimonial, error)
	Create(ctx context.Context, t *entity.Testimonial) error
	Delete(ctx context.Context, id string) error
}

type ContactRepository interface {
	Create(ctx context.Context, m *entity.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]entity.ContactMessage, error)
}
