package postgres

import (
	"context"

	"github.com/oksasatya/juicyplanet/internal/domain/entity"
	"github.com/oksasatya/juicyplanet/internal/domain/repository"
)

type TestimonialRepository struct {
	db DB
}

func NewTestimonialRepository(db DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) List(ctx context.Context, limit int) ([]entity.Testimonial, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, author, message, rating, created_at
		FROM testimonials
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []entity.Testimonial{}
	for rows.Next() {
		var t entity.Testimonial
		if err := rows.Scan(&t.ID, &t.UserID, &t.Author, &t.Message, &t.Rating, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id string) (*entity.Testimonial, error) {
	t := &entity.Testimonial{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, author, message, rating, created_at
		FROM testimonials WHERE id = $1
	`, id).Scan(&t.ID, &t.UserID, &t.Author, &t.Message, &t.Rating, &t.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, t *entity.Testimonial) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO testimonials (user_id, author, message, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, t.UserID, t.Author, t.Message, t.Rating)
	return mapErr(row.Scan(&t.ID, &t.CreatedAt))
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TestimonialRepository = (*TestimonialRepository)(nil)
