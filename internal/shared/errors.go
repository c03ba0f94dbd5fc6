package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrNoWorkspace indicates the user has no workspace membership.
	ErrNoWorkspace = errors.New("no workspace membership")
	// ErrAmbiguousWorkspace indicates the user belongs to more than one
	// workspace and must select one explicitly.
	ErrAmbiguousWorkspace = errors.New("multiple workspace memberships")
	// ErrNotMember indicates the user is not a member of the workspace.
	ErrNotMember = errors.New("not a workspace member")
)
