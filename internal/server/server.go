package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/commentree/apiserver/config"
	"github.com/commentree/apiserver/internal/auth"
	"github.com/commentree/apiserver/internal/db"
	"github.com/commentree/apiserver/internal/handlers"
	"github.com/commentree/apiserver/internal/mq"
	"github.com/commentree/apiserver/internal/services"
	"github.com/commentree/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sqlx.DB
	mq         *mq.MQ
	logger     *zap.Logger
}

// Services groups the use-cases shared by the HTTP server and the CLI.
type Services struct {
	Accounts *services.AccountService
	Comments *services.CommentService
}

// NewServices wires repositories and services over an open database.
// publisher may be nil to disable events.
func NewServices(cfg config.Config, dbConn *sqlx.DB, publisher services.EventPublisher, logger *zap.Logger) (Services, error) {
	secret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if secret == "" {
		return Services{}, errors.New("JWT_SECRET is required")
	}
	order, err := services.ParseReplyOrder(cfg.Comments.ReplyOrder)
	if err != nil {
		return Services{}, fmt.Errorf("COMMENT_REPLY_ORDER: %w", err)
	}

	accountRepo := store.NewAccountRepository(dbConn)
	commentRepo := store.NewCommentRepository(dbConn)

	return Services{
		Accounts: services.NewAccountService(
			accountRepo,
			auth.NewTokenIssuer(secret),
			cfg.Auth.AccessTokenTTL,
			services.WithAccountEvents(publisher, logger),
		),
		Comments: services.NewCommentService(commentRepo, order, publisher, logger),
	}, nil
}

// NewRouter builds the HTTP routes with the standard middleware stack.
func NewRouter(accounts handlers.Accounts, comments handlers.Comments, logger *zap.Logger) *chi.Mux {
	authMiddleware := handlers.RequireAuth(accounts, logger)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		handlers.RequestLogger(logger),
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, accounts, logger)
	router.Route("/comments", func(r chi.Router) {
		handlers.CommentRouter(r, comments, authMiddleware, logger)
	})
	return router
}

// New constructs a Server connected to the database and, when configured,
// to the message broker.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Server, error) {
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	var publisher services.EventPublisher
	if queue != nil {
		publisher = queue
	}

	svcs, err := NewServices(cfg, dbConn, publisher, logger)
	if err != nil {
		if queue != nil {
			_ = queue.Close()
		}
		_ = dbConn.Close()
		return nil, err
	}

	router := NewRouter(svcs.Accounts, svcs.Comments, logger)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		mq:         queue,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the broker and database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.mq != nil {
		if closeErr := s.mq.Close(); closeErr != nil {
			s.logger.Warn("close mq", zap.Error(closeErr))
		}
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}
