package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/pkg/idx"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// ProjectService is plain record plumbing; admin-only access is
// enforced by the HTTP role gate, never re-checked here.
type ProjectService struct {
	Store store.Store
}

// CreateProject validates required fields and persists a new project.
// Status defaults to active when omitted.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	name, description, language string,
	status domain.ProjectStatus,
) (domain.Project, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	language = strings.TrimSpace(language)

	if name == "" || description == "" || language == "" {
		return domain.Project{}, ErrMissingFields
	}

	if status == "" {
		status = domain.ProjectStatusActive
	}
	if !status.Valid() {
		return domain.Project{}, ErrInvalidProjectStatus
	}

	project := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		Language:    language,
		Status:      status,
	}

	if err := s.Store.Projects().CreateProject(ctx, project); err != nil {
		return domain.Project{}, err
	}

	return s.Store.Projects().GetProjectByID(ctx, project.ID)
}

// ListProjects returns all projects, newest first.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.Store.Projects().ListProjects(ctx)
}

// UpdateProject overwrites the mutable fields of an existing project.
// Empty fields keep their current value.
func (s *ProjectService) UpdateProject(
	ctx context.Context,
	id, name, description, language string,
	status domain.ProjectStatus,
) (domain.Project, error) {
	project, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		project.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		project.Description = description
	}
	if language = strings.TrimSpace(language); language != "" {
		project.Language = language
	}
	if status != "" {
		if !status.Valid() {
			return domain.Project{}, ErrInvalidProjectStatus
		}
		project.Status = status
	}

	if err := s.Store.Projects().UpdateProject(ctx, project); err != nil {
		return domain.Project{}, err
	}

	return project, nil
}

// DeleteProject removes a project by id.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.Store.Projects().GetProjectByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return s.Store.Projects().DeleteProject(ctx, id)
}
