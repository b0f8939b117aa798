package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	autherrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

var _ users.UserRepo = (*UserRepo)(nil)

// UserRepo provides data access for the sys_user table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

type userRow struct {
	ID          int64  `db:"id"`
	UserName    string `db:"user_name"`
	Password    string `db:"password"`
	Permissions []byte `db:"permissions"`
}

func (r userRow) toUser() (*users.User, error) {
	u := &users.User{ID: r.ID, Username: r.UserName, PasswordHash: r.Password}
	if len(r.Permissions) > 0 {
		if err := json.Unmarshal(r.Permissions, &u.Permissions); err != nil {
			return nil, autherrors.Wrapf(err, "decode permissions for user %d", r.ID)
		}
	}
	return u, nil
}

// EnsureTable creates the sys_user table if it does not exist.
// Prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sys_user (
  id BIGSERIAL PRIMARY KEY,
  user_name TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  permissions JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return autherrors.Mark(autherrors.Wrapf(err, "ensure sys_user table"), autherrors.ErrRepositoryUnavailable)
	}
	return nil
}

// FindByUsername fetches a user by its unique user name.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, autherrors.ErrUserNotFound
	}
	const q = `SELECT id, user_name, password, permissions FROM sys_user WHERE user_name = $1`
	return r.getOne(ctx, q, username)
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	const q = `SELECT id, user_name, password, permissions FROM sys_user WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (*users.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, autherrors.Mark(autherrors.Wrapf(err, "query sys_user"), autherrors.ErrRepositoryUnavailable)
	}
	return row.toUser()
}

// Upsert inserts a new user (ID == 0, the generated id is written back) or
// replaces the row with the given id.
func (r *UserRepo) Upsert(ctx context.Context, u *users.User) error {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	permsJSON, err := json.Marshal(perms)
	if err != nil {
		return autherrors.Wrapf(err, "encode permissions")
	}

	if u.ID == 0 {
		const q = `INSERT INTO sys_user (user_name, password, permissions) VALUES ($1, $2, $3) RETURNING id`
		if err := r.db.QueryRowxContext(ctx, q, u.Username, u.PasswordHash, permsJSON).Scan(&u.ID); err != nil {
			return autherrors.Mark(autherrors.Wrapf(err, "insert sys_user"), autherrors.ErrRepositoryUnavailable)
		}
		return nil
	}

	const q = `INSERT INTO sys_user (id, user_name, password, permissions) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET user_name = EXCLUDED.user_name, password = EXCLUDED.password,
		permissions = EXCLUDED.permissions, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, permsJSON); err != nil {
		return autherrors.Mark(autherrors.Wrapf(err, "upsert sys_user %d", u.ID), autherrors.ErrRepositoryUnavailable)
	}
	return nil
}
