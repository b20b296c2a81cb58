package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/notify"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/internal/console/store/drivers/sqlite"
	"github.com/lodgepole/console/pkg/cryptox"
	"github.com/lodgepole/console/pkg/idx"
	"github.com/lodgepole/console/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// recordingNotifier captures delivered invite links for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	links []string
}

func (n *recordingNotifier) SendInvite(_ context.Context, email, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, email)
	n.links = append(n.links, link)
	return nil
}

var _ notify.Notifier = (*recordingNotifier)(nil)

func newAuthService(t *testing.T, st store.Store) (*AuthService, *InviteService, *recordingNotifier) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	invites := &InviteService{
		Store:    st,
		Notifier: notifier,
		TTL:      DefaultInviteTTL,
		LinkBase: "http://localhost:3000",
	}
	auth := &AuthService{
		Store:        st,
		Signer:       signer,
		Invites:      invites,
		SessionTTL:   jwtx.DefaultSessionTTL,
		PasswordCost: cryptox.MinPasswordCost,
	}
	return auth, invites, notifier
}

func TestSignup_FirstUserBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	first, token, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, domain.RoleAdmin, first.Role)

	second, _, err := auth.Signup(ctx, "Bob", "bob@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleContributor, second.Role)

	third, _, err := auth.Signup(ctx, "Carol", "carol@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleContributor, third.Role)
}

func TestSignup_Validation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := auth.Signup(ctx, "", "alice@example.com", "secret1")
		require.ErrorIs(t, err, ErrMissingFields)

		_, _, err = auth.Signup(ctx, "Alice", "", "secret1")
		require.ErrorIs(t, err, ErrMissingFields)

		_, _, err = auth.Signup(ctx, "Alice", "alice@example.com", "")
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("short password", func(t *testing.T) {
		_, _, err := auth.Signup(ctx, "Alice", "alice@example.com", "12345")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("whitespace-only name", func(t *testing.T) {
		_, _, err := auth.Signup(ctx, "   ", "alice@example.com", "secret1")
		require.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	_, _, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = auth.Signup(ctx, "Other Alice", "alice@example.com", "secret2")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// Email uniqueness is case-insensitive.
	_, _, err = auth.Signup(ctx, "Shouty Alice", "ALICE@EXAMPLE.COM", "secret2")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignup_StoresHashNotPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	user, _, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	stored, err := st.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored.PasswordHash)
	require.True(t, cryptox.VerifyPassword("secret1", stored.PasswordHash))
	require.Equal(t, user.ID, stored.ID)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	signedUp, _, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, token, err := auth.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, signedUp.ID, user.ID)
	})

	t.Run("email is normalized", func(t *testing.T) {
		user, _, err := auth.Login(ctx, "  ALICE@example.com ", "secret1")
		require.NoError(t, err)
		require.Equal(t, signedUp.ID, user.ID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, wrongPassErr := auth.Login(ctx, "alice@example.com", "wrong-pass")
		require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)

		_, _, unknownErr := auth.Login(ctx, "nobody@example.com", "secret1")
		require.ErrorIs(t, unknownErr, ErrInvalidCredentials)

		require.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := auth.Login(ctx, "", "secret1")
		require.ErrorIs(t, err, ErrMissingFields)

		_, _, err = auth.Login(ctx, "alice@example.com", "")
		require.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestLogin_TokenIdentifiesUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	user, token, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	verifier := jwtx.NewVerifierHS256(testSecret)
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.WithinDuration(t,
		time.Now().UTC().Add(jwtx.DefaultSessionTTL),
		claims.ExpiresAt.Time,
		time.Minute,
	)
}

func TestSignupWithInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, invites, _ := newAuthService(t, st)

	// An admin must exist before anyone can be invited.
	_, _, err := auth.Signup(ctx, "Admin", "admin@example.com", "secret1")
	require.NoError(t, err)

	invite, _, err := invites.Create(ctx, "dave@example.com")
	require.NoError(t, err)

	t.Run("valid invite registers a contributor", func(t *testing.T) {
		user, token, err := auth.SignupWithInvite(ctx, invite.Token, "Dave", "secret1")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, domain.RoleContributor, user.Role)
		require.Equal(t, "dave@example.com", user.Email)
	})

	t.Run("consumed invite cannot be replayed", func(t *testing.T) {
		_, _, err := auth.SignupWithInvite(ctx, invite.Token, "Eve", "secret1")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, _, err := auth.SignupWithInvite(ctx, "deadbeef", "Eve", "secret1")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("validation runs before token lookup", func(t *testing.T) {
		_, _, err := auth.SignupWithInvite(ctx, invite.Token, "", "secret1")
		require.ErrorIs(t, err, ErrMissingFields)

		_, _, err = auth.SignupWithInvite(ctx, invite.Token, "Eve", "12345")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestSignupWithInvite_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	expired := domain.Invite{
		ID:        idx.New().String(),
		Email:     "late@example.com",
		Token:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Status:    domain.InviteStatusPending,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, expired))

	_, _, err := auth.SignupWithInvite(ctx, expired.Token, "Late", "secret1")
	require.ErrorIs(t, err, ErrInviteExpired)

	// The invite stays pending; expiry does not consume it.
	got, err := st.Invites().GetPendingInviteByToken(ctx, expired.Token)
	require.NoError(t, err)
	require.Equal(t, domain.InviteStatusPending, got.Status)
}

func TestSignupWithInvite_EmailAlreadyRegistered(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	// Invite minted before its target signed up through the normal path.
	invite := domain.Invite{
		ID:        idx.New().String(),
		Email:     "frank@example.com",
		Token:     "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Status:    domain.InviteStatusPending,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, invite))

	_, _, err := auth.Signup(ctx, "Frank", "frank@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = auth.SignupWithInvite(ctx, invite.Token, "Frank Again", "secret1")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth, _, _ := newAuthService(t, st)

	user, _, err := auth.Signup(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	got, err := auth.Me(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = auth.Me(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	require.Equal(t, "", NormalizeEmail("   "))
}
