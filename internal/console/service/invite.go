package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/notify"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/pkg/cryptox"
	"github.com/lodgepole/console/pkg/idx"
	"github.com/lodgepole/console/pkg/slogx"
)

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrInviteAlreadySent = errors.New("invite already sent to this email")

	// ErrInviteNotFound covers unknown tokens and consumed tokens
	// alike; a redeemed invite is indistinguishable from one that
	// never existed.
	ErrInviteNotFound = errors.New("invalid or expired invite token")

	// ErrInviteExpired is distinct from ErrInviteNotFound for
	// diagnostics even when both surface the same response.
	ErrInviteExpired = errors.New("invite token has expired")
)

// DefaultInviteTTL matches the session TTL by default but the two are
// configured independently.
const DefaultInviteTTL = 7 * 24 * time.Hour

// InviteService orchestrates invite creation, duplicate suppression,
// token validation and link delivery. Acceptance is not a standalone
// operation: the status flip happens inside AuthService.SignupWithInvite
// so an invite is only ever consumed together with its user.
type InviteService struct {
	Store    store.Store
	Notifier notify.Notifier
	TTL      time.Duration

	// LinkBase is the public URL of the console frontend, e.g.
	// "http://localhost:3000". Invite links are LinkBase/invite/<token>.
	LinkBase string
}

// Create mints a pending invite for the email and hands the link to the
// notification channel. Guard clauses run in order so the caller can
// tell "user already exists" apart from "invite already sent".
func (s *InviteService) Create(ctx context.Context, email string) (domain.Invite, string, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" {
		return domain.Invite{}, "", ErrEmailRequired
	}

	// 1. A registered user never gets an invite.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.Invite{}, "", ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Invite{}, "", err
	}

	// 2. At most one live (pending and unexpired) invite per email.
	// An expired pending invite does not block a fresh one.
	now := time.Now().UTC()
	existing, err := s.Store.Invites().GetPendingInviteByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Live(now) {
			return domain.Invite{}, "", ErrInviteAlreadySent
		}
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to check for existing invite", slog.Any("error", err))
		return domain.Invite{}, "", err
	}

	// 3. Generate the opaque token: 32 bytes of randomness, hex-encoded.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return domain.Invite{}, "", err
	}

	invite := domain.Invite{
		ID:        idx.New().String(),
		Email:     email,
		Token:     token,
		Status:    domain.InviteStatusPending,
		ExpiresAt: now.Add(s.inviteTTL()),
	}

	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, "", err
	}

	// Re-read so the returned record carries the store-assigned
	// creation timestamp.
	invite, err = s.Store.Invites().GetPendingInviteByToken(ctx, token)
	if err != nil {
		log.Error("failed to load created invite", slog.Any("error", err))
		return domain.Invite{}, "", err
	}

	link := s.InviteLink(token)
	if err := s.Notifier.SendInvite(ctx, email, link); err != nil {
		// Delivery is best-effort; the invite exists and the link is
		// returned to the admin regardless.
		log.Warn("failed to deliver invite link",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
	}

	log.Info("invite created",
		slog.String("invite_id", invite.ID),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	return invite, link, nil
}

// Validate checks a token against the pending-invite set. It is
// read-only and idempotent: used both for the pre-flight check on the
// invite landing page and as the first step of acceptance.
func (s *InviteService) Validate(ctx context.Context, token string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Invite{}, ErrInviteNotFound
	}

	invite, err := s.Store.Invites().GetPendingInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	if !invite.ExpiresAt.After(time.Now().UTC()) {
		return domain.Invite{}, ErrInviteExpired
	}

	return invite, nil
}

// InviteLink builds the public URL embedding the token.
func (s *InviteService) InviteLink(token string) string {
	return fmt.Sprintf("%s/invite/%s", strings.TrimRight(s.LinkBase, "/"), token)
}

func (s *InviteService) inviteTTL() time.Duration {
	if s.TTL <= 0 {
		return DefaultInviteTTL
	}
	return s.TTL
}
