package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Event channels and types published after successful writes.
const (
	ChannelAccounts = "commentree.accounts"
	ChannelComments = "commentree.comments"

	EventAccountRegistered = "account.registered"
	EventCommentCreated    = "comment.created"

	// AttrEventType is the message attribute that carries the event type.
	AttrEventType = "event_type"
)

// EventPublisher sends domain events to a broker. *mq.MQ satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// AccountRegistered is published once an account and its credential exist.
type AccountRegistered struct {
	AccountID  int64     `json:"account_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CommentCreated is published once a comment is stored.
type CommentCreated struct {
	CommentID  int64     `json:"comment_id"`
	ReplyID    *int64    `json:"reply_id"`
	AccountID  int64     `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// eventEmitter publishes best-effort events. A nil publisher drops them.
type eventEmitter struct {
	publisher EventPublisher
	logger    *zap.Logger
}

func newEventEmitter(publisher EventPublisher, logger *zap.Logger) eventEmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return eventEmitter{publisher: publisher, logger: logger}
}

// emit never fails the caller: errors are logged and swallowed.
func (e eventEmitter) emit(ctx context.Context, channel, eventType string, payload any) {
	if e.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		e.logger.Warn("marshal event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	id, err := e.publisher.Publish(ctx, channel, data, map[string]string{AttrEventType: eventType})
	if err != nil {
		e.logger.Warn("publish event",
			zap.String("channel", channel),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	e.logger.Debug("event published",
		zap.String("channel", channel),
		zap.String("event_type", eventType),
		zap.String("message_id", id),
	)
}
