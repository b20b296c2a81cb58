package store

import (
	"context"
	"errors"

	"github.com/lodgepole/console/internal/console/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and stop
// services from reaching for raw SQL.
type Store interface {
	Users() Users
	Invites() Invites
	Projects() Projects

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error
	// the transaction is rolled back, otherwise it is committed. This
	// is the recommended way to handle multi-step writes that must be
	// atomic (first-admin claim, invite acceptance).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by the normalized (lowercased, trimmed)
	// email. Used during login and duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via
	// ULID). The unique index on email is the duplicate backstop; a
	// violation maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// CountUsers returns the total number of users ever created. The
	// first-user-is-admin decision depends on this and must run inside
	// the same transaction as the insert.
	CountUsers(ctx context.Context) (int64, error)

	// ListUsersByRole returns users with the given role, newest first.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

type Invites interface {
	// CreateInvite writes a new invite in pending status.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetPendingInviteByToken returns the pending invite carrying the
	// token. Accepted invites are invisible here so a consumed token
	// re-validates as not found. Expiry is NOT filtered: the caller
	// distinguishes expired from unknown for diagnostics.
	GetPendingInviteByToken(ctx context.Context, token string) (domain.Invite, error)

	// GetPendingInviteByEmail returns the most recent pending invite
	// for the email regardless of expiry; the caller decides whether
	// it is still live.
	GetPendingInviteByEmail(ctx context.Context, email string) (domain.Invite, error)

	// MarkInviteAccepted flips status pending -> accepted. It is the
	// only mutation an invite ever sees and must happen in the same
	// transaction as the user insert it authorizes.
	MarkInviteAccepted(ctx context.Context, inviteID string) error
}

type Projects interface {
	CreateProject(ctx context.Context, p domain.Project) error
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjects returns all projects, newest first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	UpdateProject(ctx context.Context, p domain.Project) error
	DeleteProject(ctx context.Context, id string) error
}
