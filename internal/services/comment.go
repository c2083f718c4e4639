package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/commentree/apiserver/internal/store"
	"github.com/commentree/apiserver/types"
	"go.uber.org/zap"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Get(ctx context.Context, id int64) (types.Comment, error)
	Create(ctx context.Context, comment types.Comment) (types.Comment, error)
	ListNewestFirst(ctx context.Context) ([]types.Comment, error)
}

// CommentService encapsulates posting and listing comments.
type CommentService struct {
	repo   CommentRepository
	order  ReplyOrder
	events eventEmitter
}

func NewCommentService(repo CommentRepository, order ReplyOrder, publisher EventPublisher, logger *zap.Logger) *CommentService {
	return &CommentService{
		repo:   repo,
		order:  order,
		events: newEventEmitter(publisher, logger),
	}
}

// Create stores a comment by account. A non-nil replyID must reference an
// existing comment.
func (s *CommentService) Create(ctx context.Context, account types.Account, content string, replyID *int64) (types.Comment, error) {
	if replyID != nil {
		if _, err := s.repo.Get(ctx, *replyID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return types.Comment{}, ErrCommentReplyIDIncorrect
			}
			return types.Comment{}, fmt.Errorf("load reply target: %w", err)
		}
	}

	comment, err := s.repo.Create(ctx, types.Comment{
		AccountID: account.ID,
		ReplyID:   replyID,
		Content:   content,
		UserInfo:  types.NewUserInfo(account),
	})
	if err != nil {
		return types.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	s.events.emit(ctx, ChannelComments, EventCommentCreated, CommentCreated{
		CommentID:  comment.ID,
		ReplyID:    comment.ReplyID,
		AccountID:  comment.AccountID,
		OccurredAt: comment.CreatedAt,
	})
	return comment, nil
}

// List returns every comment nested into a tree, newest first.
func (s *CommentService) List(ctx context.Context) ([]*types.CommentNode, error) {
	comments, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return BuildCommentTree(comments, s.order), nil
}
