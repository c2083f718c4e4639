package cmd

import (
	"context"

	"github.com/commentree/apiserver/config"
	"github.com/commentree/apiserver/internal/db"
	"github.com/commentree/apiserver/internal/mq"
	"github.com/commentree/apiserver/internal/server"
	"github.com/commentree/apiserver/internal/services"
	"go.uber.org/zap"
)

// openServices connects the database and broker used by one-shot commands.
// The returned func releases both.
func openServices(ctx context.Context, cfg config.Config, log *zap.Logger) (server.Services, func(), error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return server.Services{}, nil, err
	}

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return server.Services{}, nil, err
	}

	var publisher services.EventPublisher
	if queue != nil {
		publisher = queue
	}

	closeAll := func() {
		if queue != nil {
			_ = queue.Close()
		}
		_ = dbConn.Close()
	}

	svcs, err := server.NewServices(cfg, dbConn, publisher, log)
	if err != nil {
		closeAll()
		return server.Services{}, nil, err
	}
	return svcs, closeAll, nil
}
