package handlers

import (
	"context"
	"net/http"

	"github.com/commentree/apiserver/internal/services"
	"github.com/commentree/apiserver/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Comments is the comment use-case surface the HTTP layer depends on.
type Comments interface {
	Create(ctx context.Context, account types.Account, content string, replyID *int64) (types.Comment, error)
	List(ctx context.Context) ([]*types.CommentNode, error)
}

// CommentHandler provides HTTP handlers for comments.
type CommentHandler struct {
	comments Comments
	logger   *zap.Logger
}

func NewCommentHandler(comments Comments, logger *zap.Logger) *CommentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentHandler{comments: comments, logger: logger}
}

// CommentRouter registers comment routes on the given router.
func CommentRouter(r chi.Router, comments Comments, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) {
	handler := NewCommentHandler(comments, logger)

	r.Get("/", handler.ListComments)
	r.With(authMiddleware).Post("/", handler.CreateComment)
}

type CreateCommentRequest struct {
	Content string `json:"content"`
	ReplyID *int64 `json:"reply_id"`
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	tree, err := h.comments.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, h.logger, services.ErrUnauthenticated)
		return
	}

	var req CreateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs fieldErrors
	if req.Content == "" {
		errs.missing("content")
	} else {
		errs.length("content", req.Content, contentMinLen, contentMaxLen)
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	replyID := req.ReplyID
	if replyID != nil && *replyID == 0 {
		replyID = nil
	}

	comment, err := h.comments.Create(r.Context(), account, req.Content, replyID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.NewCommentNode(comment))
}
