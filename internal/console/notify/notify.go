// Package notify is the out-of-band delivery boundary for invite links.
// The core only guarantees it hands over a correct, token-bearing URL;
// actual delivery (email in production) lives behind the Notifier
// interface.
package notify

import (
	"context"
	"log/slog"

	"github.com/lodgepole/console/pkg/slogx"
)

// Notifier delivers an invite link to the invited address.
type Notifier interface {
	SendInvite(ctx context.Context, email, inviteLink string) error
}

// LogNotifier stands in for an email sender by logging the invite link.
// Useful for development and the default until a real mailer is wired up.
type LogNotifier struct{}

func (LogNotifier) SendInvite(ctx context.Context, email, inviteLink string) error {
	slogx.FromContext(ctx).Info("mock email: invite link",
		slog.String("to", email),
		slog.String("link", inviteLink),
	)
	return nil
}
