package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/service"
	"github.com/lodgepole/console/pkg/httpx"
	"github.com/lodgepole/console/pkg/slogx"
)

// ProjectsHandler serves the project CRUD endpoints. All four routes sit
// behind the admin gate.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Status      string `json:"status"`
}

func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	projects, err := h.ProjectService.ListProjects(ctx)
	if err != nil {
		log.Error("failed to list projects", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Server error fetching projects")
		return
	}

	payloads := make([]projectPayload, 0, len(projects))
	for _, p := range projects {
		payloads = append(payloads, toProjectPayload(p))
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"projects": payloads,
	})
}

func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	project, err := h.ProjectService.CreateProject(
		ctx, req.Name, req.Description, req.Language, domain.ProjectStatus(req.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteError(w, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, service.ErrInvalidProjectStatus):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid project status")
		default:
			log.Error("failed to create project", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error creating project")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": toProjectPayload(project),
	})
}

func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	project, err := h.ProjectService.UpdateProject(
		ctx, id, req.Name, req.Description, req.Language, domain.ProjectStatus(req.Status),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, service.ErrInvalidProjectStatus):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid project status")
		default:
			log.Error("failed to update project", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error updating project")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Project updated successfully",
		"project": toProjectPayload(project),
	})
}

func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")

	if err := h.ProjectService.DeleteProject(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Project not found")
		default:
			log.Error("failed to delete project", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error deleting project")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Project deleted successfully",
	})
}
