package workspace

import (
	"context"

	"github.com/google/uuid"

	"github.com/calebo95/athlete-portal/internal/shared"
)

// RepositoryPort defines data access methods for workspaces.
type RepositoryPort interface {
	Memberships(ctx context.Context, userID uuid.UUID) ([]Workspace, error)
	IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
}

// Service resolves which workspaces a user may act in.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Memberships lists the workspaces the user belongs to, oldest joined first.
func (s *Service) Memberships(ctx context.Context, userID uuid.UUID) ([]Workspace, error) {
	return s.repo.Memberships(ctx, userID)
}

// ResolveDefault picks the workspace for requests that do not name one. A
// user in a single workspace gets that workspace. Multiple memberships are
// ambiguous and the caller must name a workspace explicitly.
func (s *Service) ResolveDefault(ctx context.Context, userID uuid.UUID) (Workspace, error) {
	memberships, err := s.repo.Memberships(ctx, userID)
	if err != nil {
		return Workspace{}, err
	}
	switch len(memberships) {
	case 0:
		return Workspace{}, shared.ErrNoWorkspace
	case 1:
		return memberships[0], nil
	default:
		return Workspace{}, shared.ErrAmbiguousWorkspace
	}
}

// RequireMember checks that the user belongs to the workspace.
func (s *Service) RequireMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	ok, err := s.repo.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotMember
	}
	return nil
}
