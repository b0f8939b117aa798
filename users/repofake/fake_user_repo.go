package fakeuserrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory UserRepo. Users stored without an ID get a
// snowflake ID.
type FakeUserRepo struct {
	users       map[int64]*users.User
	usernameIds map[string]int64 // username to user id
	node        *snowflake.Node
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	node, err := snowflake.NewNode(1)
	if err != nil {
		// node 1 is always within range
		panic(err)
	}
	return &FakeUserRepo{
		users:       make(map[int64]*users.User),
		usernameIds: make(map[string]int64),
		node:        node,
	}
}

func (ur *FakeUserRepo) Upsert(ctx context.Context, user *users.User) error {
	if err := ctx.Err(); err != nil {
		return autherrors.Mark(err, autherrors.ErrRepositoryUnavailable)
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == 0 {
		user.ID = ur.node.Generate().Int64()
	}
	if existing, ok := ur.users[user.ID]; ok && existing.Username != user.Username {
		delete(ur.usernameIds, existing.Username)
	}
	ur.users[user.ID] = copyUser(user)
	ur.usernameIds[strings.TrimSpace(user.Username)] = user.ID
	return nil
}

func (ur *FakeUserRepo) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, autherrors.Mark(err, autherrors.ErrRepositoryUnavailable)
	}
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.usernameIds[strings.TrimSpace(username)]
	if !ok {
		return nil, autherrors.ErrUserNotFound
	}
	return copyUser(ur.users[id]), nil
}

func (ur *FakeUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, autherrors.Mark(err, autherrors.ErrRepositoryUnavailable)
	}
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, autherrors.ErrUserNotFound
	}
	return copyUser(u), nil
}

func copyUser(u *users.User) *users.User {
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	return &c
}
