package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lodgepole/console/internal/console/service"
	"github.com/lodgepole/console/pkg/httpx"
	"github.com/lodgepole/console/pkg/slogx"
)

// ContributorsHandler serves the contributor roster and the invite
// lifecycle endpoints.
type ContributorsHandler struct {
	UserService   *service.UserService
	InviteService *service.InviteService
}

func (h *ContributorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	contributors, err := h.UserService.ListContributors(ctx)
	if err != nil {
		log.Error("failed to list contributors", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Server error fetching contributors")
		return
	}

	payloads := make([]userPayload, 0, len(contributors))
	for _, c := range contributors {
		payloads = append(payloads, toUserPayload(c))
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"contributors": payloads,
	})
}

type inviteRequest struct {
	Email string `json:"email"`
}

func (h *ContributorsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	invite, link, err := h.InviteService.Create(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			httpx.WriteError(w, http.StatusBadRequest, "Email is required")
		case errors.Is(err, service.ErrDuplicateEmail):
			httpx.WriteError(w, http.StatusBadRequest, "User already exists with this email")
		case errors.Is(err, service.ErrInviteAlreadySent):
			httpx.WriteError(w, http.StatusBadRequest, "Invite already sent to this email")
		default:
			log.Error("failed to create invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error sending invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":    "Invite sent successfully",
		"invite":     toInvitePayload(invite),
		"inviteLink": link,
	})
}

// HandleAccept is the pre-flight check the invite landing page calls
// before showing the signup form. It does not consume the invite.
func (h *ContributorsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.PathValue("token")

	invite, err := h.InviteService.Validate(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid or expired invite token")
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteError(w, http.StatusBadRequest, "Invite token has expired")
		default:
			log.Error("failed to validate invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error validating invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Invite is valid",
		"invite": map[string]any{
			"email":  invite.Email,
			"token":  invite.Token,
			"expiry": invite.ExpiresAt,
		},
	})
}
