package services

import (
	"testing"

	"github.com/commentree/apiserver/types"
	"github.com/stretchr/testify/require"
)

func newComment(id int64, replyID int64) types.Comment {
	comment := types.Comment{
		ID:       id,
		Content:  "comment",
		UserInfo: types.UserInfo{ID: 1, Username: "User1"},
	}
	if replyID != 0 {
		comment.ReplyID = &replyID
	}
	return comment
}

func ids(nodes []*types.CommentNode) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.ID)
	}
	return out
}

// chain returns n comments where each replies to the previous one,
// ordered by id descending.
func chain(n int) []types.Comment {
	comments := make([]types.Comment, 0, n)
	for id := int64(n); id >= 1; id-- {
		comments = append(comments, newComment(id, id-1))
	}
	return comments
}

func depth(root *types.CommentNode) int {
	d := 0
	for node := root; node != nil; d++ {
		if len(node.SubComments) == 0 {
			node = nil
			continue
		}
		node = node.SubComments[0]
	}
	return d
}

func TestBuildCommentTree_Empty(t *testing.T) {
	tree := BuildCommentTree(nil, ReplyOrderNewestFirst)
	require.NotNil(t, tree)
	require.Empty(t, tree)
}

func TestBuildCommentTree_ReplyNestsUnderParent(t *testing.T) {
	tree := BuildCommentTree([]types.Comment{newComment(2, 1), newComment(1, 0)}, ReplyOrderNewestFirst)

	require.Len(t, tree, 1)
	require.Equal(t, int64(1), tree[0].ID)
	require.Equal(t, []int64{2}, ids(tree[0].SubComments))
	require.NotNil(t, tree[0].SubComments[0].SubComments)
	require.Empty(t, tree[0].SubComments[0].SubComments)
}

func TestBuildCommentTree_TopLevelNewestFirst(t *testing.T) {
	tree := BuildCommentTree([]types.Comment{newComment(3, 0), newComment(2, 0), newComment(1, 0)}, ReplyOrderOldestFirst)
	require.Equal(t, []int64{3, 2, 1}, ids(tree))
}

func TestBuildCommentTree_ReplyOrder(t *testing.T) {
	comments := []types.Comment{newComment(4, 1), newComment(3, 1), newComment(2, 1), newComment(1, 0)}

	newest := BuildCommentTree(comments, ReplyOrderNewestFirst)
	require.Len(t, newest, 1)
	require.Equal(t, []int64{4, 3, 2}, ids(newest[0].SubComments))

	oldest := BuildCommentTree(comments, ReplyOrderOldestFirst)
	require.Len(t, oldest, 1)
	require.Equal(t, []int64{2, 3, 4}, ids(oldest[0].SubComments))
}

func TestBuildCommentTree_OrphanPromoted(t *testing.T) {
	tree := BuildCommentTree([]types.Comment{newComment(5, 42), newComment(4, 0)}, ReplyOrderNewestFirst)
	require.Equal(t, []int64{5, 4}, ids(tree))
	require.NotNil(t, tree[0].ReplyID)
	require.Equal(t, int64(42), *tree[0].ReplyID)
}

func TestBuildCommentTree_SeedShape(t *testing.T) {
	// Comment i replies to ((i-1)/10)*10, matching the seed command.
	var comments []types.Comment
	for i := int64(30); i >= 1; i-- {
		comments = append(comments, newComment(i, (i-1)/10*10))
	}

	tree := BuildCommentTree(comments, ReplyOrderNewestFirst)
	require.Equal(t, []int64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, ids(tree))
	require.Equal(t, []int64{20, 19, 18, 17, 16, 15, 14, 13, 12, 11}, ids(tree[0].SubComments))
	require.Equal(t, []int64{30, 29, 28, 27, 26, 25, 24, 23, 22, 21}, ids(tree[0].SubComments[0].SubComments))
}

func TestBuildCommentTree_DeepChains(t *testing.T) {
	for _, n := range []int{75, 10000} {
		tree := BuildCommentTree(chain(n), ReplyOrderNewestFirst)
		require.Len(t, tree, 1)
		require.Equal(t, int64(1), tree[0].ID)
		require.Equal(t, n, depth(tree[0]))
	}
}

func TestBuildCommentTree_CopiesFields(t *testing.T) {
	comment := newComment(7, 0)
	comment.Content = "hello"
	tree := BuildCommentTree([]types.Comment{comment}, ReplyOrderNewestFirst)

	require.Len(t, tree, 1)
	require.Equal(t, "hello", tree[0].Content)
	require.Nil(t, tree[0].ReplyID)
	require.Equal(t, types.UserInfo{ID: 1, Username: "User1"}, tree[0].UserInfo)
}

func TestParseReplyOrder(t *testing.T) {
	for input, want := range map[string]ReplyOrder{
		"":         ReplyOrderNewestFirst,
		"newest":   ReplyOrderNewestFirst,
		" Oldest ": ReplyOrderOldestFirst,
	} {
		got, err := ParseReplyOrder(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseReplyOrder("sideways")
	require.Error(t, err)
	require.Equal(t, "oldest", ReplyOrderOldestFirst.String())
}
