package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/company-prep/internal/config"
	"github.com/jonathan/company-prep/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	users []db.User
	err   error
}

func (m *memStore) CreateUser(_ context.Context, username, hash string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u := db.User{ID: uuid.New(), Username: username, PasswordHash: hash, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	m.users = append(m.users, u)
	return &u, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, m.err
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func newTestService() (*Service, *memStore) {
	store := &memStore{}
	return NewService(store, &config.PasswordConfig{BcryptCost: config.MinBcryptCost}), store
}

func TestCreate(t *testing.T) {
	svc, store := newTestService()

	u, err := svc.Create(context.Background(), CreateRequest{Username: "  alice ", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), u.CreatedAt)
	require.Len(t, store.users, 1)
	assert.NotEqual(t, "password123", store.users[0].PasswordHash)

	got, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestCreate_UsernameTaken(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{Username: "alice", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreate_Invalid(t *testing.T) {
	svc, store := newTestService()

	for _, req := range []CreateRequest{
		{Username: "", Password: "password123"},
		{Username: "al", Password: "password123"},
		{Username: "alice", Password: "short"},
	} {
		_, err := svc.Create(context.Background(), req)
		assert.Error(t, err, req.Username)
	}
	assert.Empty(t, store.users)
}

func TestCreate_StoreError(t *testing.T) {
	svc, store := newTestService()
	store.err = errors.New("db down")

	_, err := svc.Create(context.Background(), CreateRequest{Username: "alice", Password: "password123"})
	assert.ErrorContains(t, err, "db down")
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), CreateRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "bob", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGet_Missing(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, u)
}
