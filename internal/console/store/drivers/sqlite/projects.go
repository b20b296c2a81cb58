package sqlite

import (
	"context"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/store/drivers/sqlite/gen"
)

type projectsRepo struct {
	q *gen.Queries
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	err := r.q.CreateProject(ctx, gen.CreateProjectParams{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Language:    p.Language,
		Status:      string(p.Status),
	})
	return mapConstraint(err)
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row, err := r.q.GetProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return mapProject(row), nil
}

func (r *projectsRepo) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.q.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, mapProject(row))
	}
	return projects, nil
}

func (r *projectsRepo) UpdateProject(ctx context.Context, p domain.Project) error {
	return r.q.UpdateProject(ctx, gen.UpdateProjectParams{
		Name:        p.Name,
		Description: p.Description,
		Language:    p.Language,
		Status:      string(p.Status),
		ID:          p.ID,
	})
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	return r.q.DeleteProject(ctx, id)
}
