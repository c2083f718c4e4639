package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Comment is a single persisted message. A comment with a ReplyID is a
// reply to the comment carrying that ID.
type Comment struct {
	// ID is the unique identifier of the comment. IDs grow with creation
	// time, so ordering by ID descending lists the newest comment first.
	ID int64 `json:"id" db:"id"`

	// AccountID references the author.
	AccountID int64 `json:"account_id" db:"account_id"`

	// ReplyID is the ID of the comment being replied to, or nil for a
	// top-level comment.
	ReplyID *int64 `json:"reply_id" db:"reply_id"`

	// Content is the comment text, 3 to 200 characters.
	Content string `json:"content" db:"content"`

	// UserInfo is a snapshot of the author taken when the comment was
	// created. Later username changes do not affect it.
	UserInfo UserInfo `json:"user_info" db:"user_info"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserInfo is the public part of an account.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewUserInfo snapshots the public fields of an account.
func NewUserInfo(account Account) UserInfo {
	return UserInfo{ID: account.ID, Username: account.Username}
}

// Value stores UserInfo as a JSON document. The text form is returned so
// the driver does not encode it as bytea.
func (u UserInfo) Value() (driver.Value, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads UserInfo from a JSON column.
func (u *UserInfo) Scan(src any) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, u)
	case string:
		return json.Unmarshal([]byte(data), u)
	case nil:
		*u = UserInfo{}
		return nil
	default:
		return errors.New("unsupported user_info column type")
	}
}

// CommentNode is a comment together with its direct replies, as served by
// the listing endpoint.
type CommentNode struct {
	ID          int64          `json:"id"`
	ReplyID     *int64         `json:"reply_id"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"created_at"`
	UserInfo    UserInfo       `json:"user_info"`
	SubComments []*CommentNode `json:"sub_comments"`
}

// NewCommentNode serializes a comment into a node without replies.
func NewCommentNode(comment Comment) *CommentNode {
	return &CommentNode{
		ID:          comment.ID,
		ReplyID:     comment.ReplyID,
		Content:     comment.Content,
		CreatedAt:   comment.CreatedAt.UTC(),
		UserInfo:    comment.UserInfo,
		SubComments: []*CommentNode{},
	}
}
