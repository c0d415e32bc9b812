package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/partsgarage/inventory-api/internal/model"
)

// projectStore is the slice of the project repository the service
// needs.
type projectStore interface {
	Create(ctx context.Context, name, description string, ownerUserID uint64) (uint64, error)
	GetByID(ctx context.Context, projectID uint64) (model.Project, error)
	Exists(ctx context.Context, projectID uint64) (bool, error)
	ListForUser(ctx context.Context, username string) ([]model.Project, error)
	ListPartNumbers(ctx context.Context, projectID uint64) ([]uint64, error)
	AddPart(ctx context.Context, projectID, partNumber uint64) error
	AddUser(ctx context.Context, projectID, userID uint64) error
	Update(ctx context.Context, projectID uint64, name, description string) error
	Delete(ctx context.Context, projectID uint64) error
	RemovePart(ctx context.Context, projectID, partNumber uint64) error
}

// partResolver resolves one part number back to its record; the part
// service implements it.
type partResolver interface {
	GetByNumber(ctx context.Context, partNumber uint64) (model.CarPart, error)
}

// ownerChecker answers whether a user id exists; the user service
// implements it.
type ownerChecker interface {
	UserExistsByID(ctx context.Context, id uint64) (bool, error)
}

// ProjectService implements the project lifecycle and the two
// many-to-many associations. Association writes are atomic guarded
// inserts at the repository level, so the service never races between
// an existence check and the corresponding insert.
type ProjectService struct {
	projects projectStore
	parts    partResolver
	users    ownerChecker
}

// NewProjectService builds a ProjectService over its collaborators.
func NewProjectService(projects projectStore, parts partResolver, users ownerChecker) *ProjectService {
	return &ProjectService{projects: projects, parts: parts, users: users}
}

// CreateProject creates a project owned by ownerUserID. A resolvable
// owner is a hard precondition: without one the project is never
// written.
func (s *ProjectService) CreateProject(ctx context.Context, name, description string, ownerUserID uint64) (uint64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: project name is required", model.ErrValidation)
	}
	if ownerUserID == 0 {
		return 0, model.ErrOwnerRequired
	}
	ok, err := s.users.UserExistsByID(ctx, ownerUserID)
	if err != nil {
		return 0, wrapStore(err)
	}
	if !ok {
		return 0, model.ErrOwnerRequired
	}
	id, err := s.projects.Create(ctx, name, description, ownerUserID)
	if err != nil {
		return 0, wrapStore(err)
	}
	return id, nil
}

// AddPartToProject links a part to a project. Both endpoints must
// already exist; a missing one is model.ErrIntegrity and no
// association row is created. Re-adding an existing link succeeds
// silently.
func (s *ProjectService) AddPartToProject(ctx context.Context, projectID, partNumber uint64) error {
	if projectID == 0 || partNumber == 0 {
		return fmt.Errorf("%w: project id and part number must be positive integers", model.ErrValidation)
	}
	return wrapStore(s.projects.AddPart(ctx, projectID, partNumber))
}

// AddUserToProject links a user to a project with the same existence
// precondition as AddPartToProject.
func (s *ProjectService) AddUserToProject(ctx context.Context, projectID, userID uint64) error {
	if projectID == 0 || userID == 0 {
		return fmt.Errorf("%w: project id and user id must be positive integers", model.ErrValidation)
	}
	return wrapStore(s.projects.AddUser(ctx, projectID, userID))
}

// ListProjectsForUser returns every project the username is associated
// with.
func (s *ProjectService) ListProjectsForUser(ctx context.Context, username string) ([]model.Project, error) {
	out, err := s.projects.ListForUser(ctx, username)
	if err != nil {
		return nil, wrapStore(err)
	}
	return out, nil
}

// GetProject fetches a project by id. The second result is false when
// the project does not exist; absence is not an error.
func (s *ProjectService) GetProject(ctx context.Context, projectID uint64) (model.Project, bool, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, false, nil
		}
		return model.Project{}, false, wrapStore(err)
	}
	return p, true, nil
}

// ListPartsInProject resolves every associated part number back to its
// record. An association pointing at a part that no longer exists is
// a data-integrity fault and reported as model.ErrIntegrity, never
// silently skipped.
func (s *ProjectService) ListPartsInProject(ctx context.Context, projectID uint64) ([]model.CarPart, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, wrapStore(err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: project %d", model.ErrNotFound, projectID)
	}
	numbers, err := s.projects.ListPartNumbers(ctx, projectID)
	if err != nil {
		return nil, wrapStore(err)
	}
	out := make([]model.CarPart, 0, len(numbers))
	for _, n := range numbers {
		p, err := s.parts.GetByNumber(ctx, n)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: project %d references missing part %d",
					model.ErrIntegrity, projectID, n)
			}
			return nil, wrapStore(err)
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdateProject changes a project's name and description. Existence
// is checked explicitly before the write.
func (s *ProjectService) UpdateProject(ctx context.Context, name, description string, projectID uint64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: project name is required", model.ErrValidation)
	}
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return wrapStore(err)
	}
	if !exists {
		return fmt.Errorf("%w: project %d", model.ErrNotFound, projectID)
	}
	return wrapStore(s.projects.Update(ctx, projectID, name, description))
}

// DeleteProject removes a project and both of its association sets.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uint64) error {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: project %d", model.ErrNotFound, projectID)
		}
		return wrapStore(err)
	}
	return nil
}

// DeletePartFromProject removes a single association row. Removing a
// link that does not exist is a no-op.
func (s *ProjectService) DeletePartFromProject(ctx context.Context, projectID, partNumber uint64) error {
	return wrapStore(s.projects.RemovePart(ctx, projectID, partNumber))
}

// IsMember reports whether the username is associated with the
// project. Handlers use it to keep guests inside their own projects.
func (s *ProjectService) IsMember(ctx context.Context, projectID uint64, username string) (bool, error) {
	list, err := s.projects.ListForUser(ctx, username)
	if err != nil {
		return false, wrapStore(err)
	}
	for _, p := range list {
		if p.ID == projectID {
			return true, nil
		}
	}
	return false, nil
}
