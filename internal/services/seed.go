package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/commentree/apiserver/types"
)

// Demo account created by Seed.
const (
	SeedUsername = "User1"
	SeedEmail    = "user1@foo.bar"
	SeedPassword = "A1#dsa12"
)

// SeedResult reports what Seed wrote.
type SeedResult struct {
	Account  types.Account
	Created  bool
	Comments []int64
}

// Seed registers the demo account, reusing it when it already exists, and
// posts n comments. Comment i (1-based) replies to comment ((i-1)/10)*10 of
// the same run when that index is non-zero, so the first ten are top-level
// and each later block of ten answers the last comment of an earlier block.
func Seed(ctx context.Context, accounts *AccountService, comments *CommentService, n int) (SeedResult, error) {
	if n < 0 {
		return SeedResult{}, fmt.Errorf("comment count must not be negative, got %d", n)
	}
	var result SeedResult

	account, err := accounts.Register(ctx, SeedUsername, SeedEmail, SeedPassword)
	switch {
	case err == nil:
		result.Created = true
	case errors.Is(err, ErrUsernameAlreadyUsed):
		account, err = accounts.FindByUsername(ctx, SeedUsername)
		if err != nil {
			return SeedResult{}, err
		}
	default:
		return SeedResult{}, fmt.Errorf("register seed account: %w", err)
	}
	result.Account = account

	result.Comments = make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		var replyID *int64
		if target := (i - 1) / 10 * 10; target > 0 {
			id := result.Comments[target-1]
			replyID = &id
		}
		comment, err := comments.Create(ctx, account, fmt.Sprintf("Seed comment %d", i), replyID)
		if err != nil {
			return result, fmt.Errorf("create seed comment %d: %w", i, err)
		}
		result.Comments = append(result.Comments, comment.ID)
	}
	return result, nil
}
