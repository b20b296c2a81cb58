package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		Role:         domain.RoleContributor,
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := testUser("alice@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.False(t, byID.CreatedAt.IsZero(), "store assigns the creation timestamp")

	byEmail, err := st.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = st.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_DuplicateEmailMapsToAlreadyExists(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Users().CreateUser(ctx, testUser("alice@example.com")))

	err := st.Users().CreateUser(ctx, testUser("alice@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_CountAndListByRole(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	count, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	admin := testUser("admin@example.com")
	admin.Role = domain.RoleAdmin
	require.NoError(t, st.Users().CreateUser(ctx, admin))
	require.NoError(t, st.Users().CreateUser(ctx, testUser("bob@example.com")))
	require.NoError(t, st.Users().CreateUser(ctx, testUser("carol@example.com")))

	count, err = st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	contributors, err := st.Users().ListUsersByRole(ctx, domain.RoleContributor)
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	require.Equal(t, "carol@example.com", contributors[0].Email, "newest first")
}

func TestInvites_Lifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	inv := domain.Invite{
		ID:        idx.New().String(),
		Email:     "dave@example.com",
		Token:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Status:    domain.InviteStatusPending,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, inv))

	t.Run("pending invite is visible by token and email", func(t *testing.T) {
		byToken, err := st.Invites().GetPendingInviteByToken(ctx, inv.Token)
		require.NoError(t, err)
		require.Equal(t, inv.ID, byToken.ID)

		byEmail, err := st.Invites().GetPendingInviteByEmail(ctx, inv.Email)
		require.NoError(t, err)
		require.Equal(t, inv.ID, byEmail.ID)
	})

	t.Run("duplicate token maps to already exists", func(t *testing.T) {
		dup := inv
		dup.ID = idx.New().String()
		dup.Email = "other@example.com"
		err := st.Invites().CreateInvite(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("accepted invite disappears from pending lookups", func(t *testing.T) {
		require.NoError(t, st.Invites().MarkInviteAccepted(ctx, inv.ID))

		_, err := st.Invites().GetPendingInviteByToken(ctx, inv.Token)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Invites().GetPendingInviteByEmail(ctx, inv.Email)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestProjects_CRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	p := domain.Project{
		ID:          idx.New().String(),
		Name:        "Weaver",
		Description: "Static site generator",
		Language:    "Go",
		Status:      domain.ProjectStatusActive,
	}
	require.NoError(t, st.Projects().CreateProject(ctx, p))

	got, err := st.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Name, got.Name)

	got.Status = domain.ProjectStatusOnHold
	require.NoError(t, st.Projects().UpdateProject(ctx, got))

	updated, err := st.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ProjectStatusOnHold, updated.Status)

	require.NoError(t, st.Projects().DeleteProject(ctx, p.ID))
	_, err = st.Projects().GetProjectByID(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	sentinel := store.ErrAlreadyExists

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, testUser("alice@example.com")); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	count, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, count, "failed transaction must leave no rows behind")
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, testUser("alice@example.com")); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, testUser("bob@example.com"))
	})
	require.NoError(t, err)

	count, err := st.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestPing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	require.NoError(t, st.Ping(ctx))
}
