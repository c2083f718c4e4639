package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/commentree/apiserver/internal/store"
	"github.com/commentree/apiserver/types"
)

type fakeAccountRepo struct {
	mu          sync.Mutex
	nextID      int64
	accounts    map[int64]types.Account
	credentials map[int64]types.Credential

	// lookupErr is returned by every Get* call when set.
	lookupErr error
	// createErr is returned by CreateWithCredential when set.
	createErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:    map[int64]types.Account{},
		credentials: map[int64]types.Credential{},
	}
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return types.Account{}, f.lookupErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return types.Account{}, store.ErrNotFound
	}
	return account, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (types.Account, error) {
	return f.find(func(a types.Account) bool { return a.Username == username })
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (types.Account, error) {
	return f.find(func(a types.Account) bool { return a.Email == email })
}

func (f *fakeAccountRepo) find(match func(types.Account) bool) (types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return types.Account{}, f.lookupErr
	}
	for _, account := range f.accounts {
		if match(account) {
			return account, nil
		}
	}
	return types.Account{}, store.ErrNotFound
}

func (f *fakeAccountRepo) CreateWithCredential(ctx context.Context, account types.Account, credential types.Credential) (types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return types.Account{}, f.createErr
	}
	f.nextID++
	now := time.Now().UTC()
	account.ID = f.nextID
	account.CreatedAt = now
	account.UpdatedAt = now
	credential.ID = f.nextID
	credential.AccountID = account.ID
	f.accounts[account.ID] = account
	f.credentials[account.ID] = credential
	return account, nil
}

func (f *fakeAccountRepo) GetCredential(ctx context.Context, accountID int64, authType string) (types.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	credential, ok := f.credentials[accountID]
	if !ok || credential.AuthType != authType {
		return types.Credential{}, store.ErrNotFound
	}
	return credential, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []types.Comment

	getErr  error
	listErr error
}

func (f *fakeCommentRepo) Get(ctx context.Context, id int64) (types.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return types.Comment{}, f.getErr
	}
	for _, comment := range f.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return types.Comment{}, store.ErrNotFound
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = int64(len(f.comments) + 1)
	comment.CreatedAt = time.Now().UTC()
	comment.UpdatedAt = comment.CreatedAt
	f.comments = append(f.comments, comment)
	return comment, nil
}

func (f *fakeCommentRepo) ListNewestFirst(ctx context.Context) ([]types.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.Comment, 0, len(f.comments))
	for i := len(f.comments) - 1; i >= 0; i-- {
		out = append(out, f.comments[i])
	}
	return out, nil
}

type publishedEvent struct {
	channel string
	data    []byte
	attrs   map[string]string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.events = append(f.events, publishedEvent{channel: channel, data: data, attrs: attrs})
	return "msg-1", nil
}

var errBoom = errors.New("boom")
