package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/pkg/cryptox"
	"github.com/lodgepole/console/pkg/idx"
	"github.com/lodgepole/console/pkg/jwtx"
	"github.com/lodgepole/console/pkg/slogx"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrDuplicateEmail   = errors.New("user already exists with this email")

	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so login failures never reveal which factor was
	// wrong. Do not split this without a product decision.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// MinPasswordLength is the minimum accepted password length on any
// signup path.
const MinPasswordLength = 6

// AuthService orchestrates signup, login, session checks and
// invite-based signup. It is stateless over the User store; every call
// fetches, decides and persists.
type AuthService struct {
	Store        store.Store
	Signer       jwtx.Signer
	Invites      *InviteService
	SessionTTL   time.Duration
	PasswordCost int
}

// Signup registers a new user and issues a session token. The very
// first user ever created becomes the admin; everyone after that is a
// contributor. The count-and-insert runs inside one transaction so two
// concurrent first signups cannot both claim the admin slot.
func (s *AuthService) Signup(
	ctx context.Context,
	name, email, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, "", ErrPasswordTooShort
	}

	// Fast-path duplicate check; the unique index on email is the real
	// guard and maps to the same error below.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, "", ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, "", err
	}

	passwordHash, err := cryptox.HashPassword(password, s.PasswordCost)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		count, err := tx.Users().CountUsers(ctx)
		if err != nil {
			return err
		}

		user.Role = domain.RoleContributor
		if count == 0 {
			user.Role = domain.RoleAdmin
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrDuplicateEmail
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("user signed up",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password return the identical error.
func (s *AuthService) Login(
	ctx context.Context,
	email, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

// Me returns the already-authenticated caller's record. Identity is
// resolved upstream by the token middleware; a missing user here means
// that precondition broke.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// SignupWithInvite consumes an invite token to register a contributor
// and issues a session token. User creation and the pending->accepted
// flip happen in the same transaction: an invite must never be marked
// accepted without its user existing.
func (s *AuthService) SignupWithInvite(
	ctx context.Context,
	inviteToken, name, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, "", ErrPasswordTooShort
	}

	invite, err := s.Invites.Validate(ctx, inviteToken)
	if err != nil {
		return domain.User{}, "", err
	}

	// Defends against a stale-but-unconsumed invite whose target
	// already signed up through the normal path.
	if _, err := s.Store.Users().GetUserByEmail(ctx, invite.Email); err == nil {
		return domain.User{}, "", ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.User{}, "", err
	}

	passwordHash, err := cryptox.HashPassword(password, s.PasswordCost)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// The invite path never grants admin, regardless of store state.
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        invite.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleContributor,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Invites().MarkInviteAccepted(ctx, invite.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrDuplicateEmail
		}
		log.Error("failed to register invited user",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return domain.User{}, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("user registered via invite",
		slog.String("user_id", user.ID),
		slog.String("invite_id", invite.ID),
	)

	return user, token, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID string) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(userID, ttl, time.Now().UTC()))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign session token", slog.Any("error", err))
		return "", err
	}
	return token, nil
}

// NormalizeEmail lowercases and trims an email address. Every store
// lookup and insert goes through this so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
