package http

import (
	"time"

	"github.com/lodgepole/console/internal/console/domain"
)

// userPayload is the public projection of a user. The password hash is
// never serialized.
type userPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPayload(u domain.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type invitePayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Expiry    time.Time `json:"expiry"`
	CreatedAt time.Time `json:"createdAt"`
}

func toInvitePayload(i domain.Invite) invitePayload {
	return invitePayload{
		ID:        i.ID,
		Email:     i.Email,
		Status:    string(i.Status),
		Expiry:    i.ExpiresAt,
		CreatedAt: i.CreatedAt,
	}
}

type projectPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProjectPayload(p domain.Project) projectPayload {
	return projectPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Language:    p.Language,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}
