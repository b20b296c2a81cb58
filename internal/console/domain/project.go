package domain

import "time"

// ProjectStatus tracks where a project sits in its delivery lifecycle.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is a plain record managed by admins. No invariants beyond
// required fields; all access control happens at the HTTP layer.
type Project struct {
	ID          string
	Name        string
	Description string
	Language    string
	Status      ProjectStatus
	CreatedAt   time.Time
}
