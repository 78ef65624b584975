package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/social-platform/internal/domain"
)

// PostListQuery carries validated filter, sort and pagination values. The sort
// column is whitelisted by the caller before it reaches SQL.
type PostListQuery struct {
	FilterID     *int64
	FilterUserID *string
	SortColumn   string
	SortDesc     bool
	Limit        int
	Offset       int
}

// PostRepository defines persistence access for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query PostListQuery) ([]*domain.Post, int64, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (content, user_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		post.Content,
		post.UserID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET content=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query, post.Content, post.ID).Scan(&post.UpdatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	const query = `
        SELECT id, content, user_id, created_at, updated_at
        FROM posts WHERE id=$1`

	var post domain.Post
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Content,
		&post.UserID,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, query PostListQuery) ([]*domain.Post, int64, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if query.FilterID != nil {
		args = append(args, *query.FilterID)
		conditions = append(conditions, fmt.Sprintf("id=$%d", len(args)))
	}
	if query.FilterUserID != nil {
		args = append(args, *query.FilterUserID)
		conditions = append(conditions, fmt.Sprintf("user_id=$%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortColumn := query.SortColumn
	if sortColumn == "" {
		sortColumn = "id"
	}
	direction := "ASC"
	if query.SortDesc {
		direction = "DESC"
	}

	args = append(args, query.Limit, query.Offset)
	listQuery := fmt.Sprintf(
		"SELECT id, content, user_id, created_at, updated_at FROM posts%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		where, sortColumn, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, 0, err
		}
		posts = append(posts, &post)
	}
	return posts, total, rows.Err()
}
