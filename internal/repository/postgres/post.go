package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/imageshare/internal/domain"
)

const postColumns = "id, title, description, image_path, image_type, likes, dislikes, created_at"

type postRepo struct {
	db *sql.DB
}

// Create inserts the post and lets the database assign id and created_at.
func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (title, description, image_path, image_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, likes, dislikes, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Description, post.ImagePath, post.ImageType,
	).Scan(&post.ID, &post.Likes, &post.Dislikes, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	return scanPost(row)
}

func (r *postRepo) List(ctx context.Context, sort domain.PostSort) ([]domain.Post, error) {
	order := "created_at DESC, id DESC"
	if sort == domain.SortOldest {
		order = "created_at ASC, id ASC"
	}

	rows, err := r.db.QueryContext(ctx, "SELECT "+postColumns+" FROM posts ORDER BY "+order)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// IncrementLikes bumps the counter with a single UPDATE, so concurrent
// callers never lose an increment.
func (r *postRepo) IncrementLikes(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE posts SET likes = likes + 1 WHERE id = $1 RETURNING "+postColumns, id)
	return scanPost(row)
}

func (r *postRepo) IncrementDislikes(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		"UPDATE posts SET dislikes = dislikes + 1 WHERE id = $1 RETURNING "+postColumns, id)
	return scanPost(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*domain.Post, error) {
	p := &domain.Post{}
	err := s.Scan(&p.ID, &p.Title, &p.Description, &p.ImagePath, &p.ImageType,
		&p.Likes, &p.Dislikes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
