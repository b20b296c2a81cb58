package sqlite

import (
	"context"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/store/drivers/sqlite/gen"
)

type invitesRepo struct {
	q *gen.Queries
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	err := r.q.CreateInvite(ctx, gen.CreateInviteParams{
		ID:        inv.ID,
		Email:     inv.Email,
		Token:     inv.Token,
		Status:    string(inv.Status),
		ExpiresAt: inv.ExpiresAt,
	})
	return mapConstraint(err)
}

func (r *invitesRepo) GetPendingInviteByToken(ctx context.Context, token string) (domain.Invite, error) {
	row, err := r.q.GetPendingInviteByToken(ctx, token)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return mapInvite(row), nil
}

func (r *invitesRepo) GetPendingInviteByEmail(ctx context.Context, email string) (domain.Invite, error) {
	row, err := r.q.GetPendingInviteByEmail(ctx, email)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return mapInvite(row), nil
}

func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, inviteID string) error {
	return r.q.MarkInviteAccepted(ctx, inviteID)
}
