package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	accounts := newAccountService(t, newFakeAccountRepo())
	repo := &fakeCommentRepo{}
	comments := NewCommentService(repo, ReplyOrderNewestFirst, nil, nil)

	result, err := Seed(ctx, accounts, comments, 25)
	require.NoError(t, err)
	require.True(t, result.Created)
	require.Equal(t, SeedUsername, result.Account.Username)
	require.Len(t, result.Comments, 25)

	for i, comment := range repo.comments {
		n := i + 1
		switch {
		case n <= 10:
			require.Nil(t, comment.ReplyID, n)
		case n <= 20:
			require.Equal(t, int64(10), *comment.ReplyID, n)
		default:
			require.Equal(t, int64(20), *comment.ReplyID, n)
		}
	}

	tree, err := comments.List(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 10)
	require.Len(t, tree[0].SubComments, 10)
	require.Len(t, tree[0].SubComments[0].SubComments, 5)

	// A second run reuses the account.
	again, err := Seed(ctx, accounts, comments, 1)
	require.NoError(t, err)
	require.False(t, again.Created)
	require.Equal(t, result.Account.ID, again.Account.ID)

	_, err = accounts.Login(ctx, SeedPassword, SeedUsername, "")
	require.NoError(t, err)
}

func TestFindByUsername(t *testing.T) {
	accounts := newAccountService(t, newFakeAccountRepo())
	_, err := accounts.FindByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrObjectNotFound)
}
