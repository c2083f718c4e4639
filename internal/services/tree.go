package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/commentree/apiserver/types"
)

// ReplyOrder controls the order of replies inside each parent.
type ReplyOrder int

const (
	// ReplyOrderNewestFirst keeps the listing order: newest reply first.
	ReplyOrderNewestFirst ReplyOrder = iota
	// ReplyOrderOldestFirst lists replies in the order they were posted.
	ReplyOrderOldestFirst
)

func (o ReplyOrder) String() string {
	switch o {
	case ReplyOrderOldestFirst:
		return "oldest"
	default:
		return "newest"
	}
}

// ParseReplyOrder accepts "newest", "oldest" or an empty string.
func ParseReplyOrder(value string) (ReplyOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "newest":
		return ReplyOrderNewestFirst, nil
	case "oldest":
		return ReplyOrderOldestFirst, nil
	default:
		return ReplyOrderNewestFirst, fmt.Errorf("unknown reply order %q", value)
	}
}

// BuildCommentTree nests comments under the comment they reply to.
//
// comments must be ordered by id descending. Top-level nodes keep that order.
// A reply whose target is not in comments is promoted to the top level.
// Nodes are linked by pointer in a single pass, so depth is unbounded.
func BuildCommentTree(comments []types.Comment, order ReplyOrder) []*types.CommentNode {
	nodes := make(map[int64]*types.CommentNode, len(comments))
	for _, comment := range comments {
		nodes[comment.ID] = types.NewCommentNode(comment)
	}

	roots := make([]*types.CommentNode, 0)
	for _, comment := range comments {
		node := nodes[comment.ID]
		if comment.ReplyID != nil {
			if parent, ok := nodes[*comment.ReplyID]; ok && parent != node {
				parent.SubComments = append(parent.SubComments, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	if order == ReplyOrderOldestFirst {
		for _, node := range nodes {
			slices.Reverse(node.SubComments)
		}
	}
	return roots
}
