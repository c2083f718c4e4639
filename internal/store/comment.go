package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/commentree/apiserver/types"
	"github.com/jmoiron/sqlx"
)

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const selectComment = `
		SELECT id, account_id, reply_id, content, user_info, created_at, updated_at
		FROM comments`

func (r *CommentRepository) Get(ctx context.Context, id int64) (types.Comment, error) {
	var comment types.Comment
	if err := sqlx.GetContext(ctx, r.db, &comment, selectComment+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Comment{}, ErrNotFound
		}
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	const query = `
		INSERT INTO comments (account_id, reply_id, content, user_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		comment.AccountID,
		comment.ReplyID,
		comment.Content,
		comment.UserInfo,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID); err != nil {
		return types.Comment{}, err
	}
	return comment, nil
}

// ListNewestFirst returns every comment ordered by id descending.
func (r *CommentRepository) ListNewestFirst(ctx context.Context) ([]types.Comment, error) {
	comments := []types.Comment{}
	if err := sqlx.SelectContext(ctx, r.db, &comments, selectComment+` ORDER BY id DESC`); err != nil {
		return nil, err
	}
	return comments, nil
}

// Update is not supported: comments cannot be edited.
func (r *CommentRepository) Update(ctx context.Context, comment types.Comment) (types.Comment, error) {
	return types.Comment{}, ErrUnsupported
}

// Delete is not supported: comments cannot be removed.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return ErrUnsupported
}
