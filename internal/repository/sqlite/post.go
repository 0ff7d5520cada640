package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/imageshare/internal/domain"
)

const postColumns = "id, title, description, image_path, image_type, likes, dislikes, created_at"

// postRepo implements domain.PostRepository using SQLite.
type postRepo struct {
	db *sql.DB
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (title, description, image_path, image_type, likes, dislikes, created_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?)`,
		post.Title, post.Description, post.ImagePath, post.ImageType, now,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	post.ID = id
	post.Likes = 0
	post.Dislikes = 0
	post.CreatedAt = now
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return getPost(ctx, r.db, id)
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
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImagePath, &p.ImageType,
			&p.Likes, &p.Dislikes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepo) IncrementLikes(ctx context.Context, id int64) (*domain.Post, error) {
	return r.increment(ctx, id, "UPDATE posts SET likes = likes + 1 WHERE id = ?")
}

func (r *postRepo) IncrementDislikes(ctx context.Context, id int64) (*domain.Post, error) {
	return r.increment(ctx, id, "UPDATE posts SET dislikes = dislikes + 1 WHERE id = ?")
}

// increment runs the counter update and reads the row back in one transaction.
func (r *postRepo) increment(ctx context.Context, id int64, query string) (*domain.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("increment counter: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	post, err := getPost(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return post, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getPost(ctx context.Context, q queryRower, id int64) (*domain.Post, error) {
	p := &domain.Post{}
	err := q.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = ?", id).
		Scan(&p.ID, &p.Title, &p.Description, &p.ImagePath, &p.ImageType,
			&p.Likes, &p.Dislikes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}
