package obligations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryObligationRepo struct {
	obligations map[uuid.UUID]Obligation
}

func newMemoryObligationRepo() *memoryObligationRepo {
	return &memoryObligationRepo{obligations: make(map[uuid.UUID]Obligation)}
}

func (r *memoryObligationRepo) List(ctx context.Context, workspaceID uuid.UUID, openOnly bool) ([]Obligation, error) {
	var out []Obligation
	for _, o := range r.obligations {
		if o.WorkspaceID != workspaceID {
			continue
		}
		if openOnly && !o.Status.Open() {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *memoryObligationRepo) Get(ctx context.Context, workspaceID, id uuid.UUID) (Obligation, error) {
	o, ok := r.obligations[id]
	if !ok || o.WorkspaceID != workspaceID {
		return Obligation{}, ErrNotFound
	}
	return o, nil
}

func (r *memoryObligationRepo) Create(ctx context.Context, o Obligation) (Obligation, error) {
	r.obligations[o.ID] = o
	return o, nil
}

func (r *memoryObligationRepo) UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status) error {
	o, ok := r.obligations[id]
	if !ok || o.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	o.Status = status
	r.obligations[id] = o
	return nil
}

func (r *memoryObligationRepo) Delete(ctx context.Context, workspaceID, id uuid.UUID) error {
	if _, ok := r.obligations[id]; !ok {
		return ErrNotFound
	}
	delete(r.obligations, id)
	return nil
}

func TestCreateObligationValidation(t *testing.T) {
	svc := NewService(newMemoryObligationRepo())
	ws := uuid.New()

	_, err := svc.Create(context.Background(), Obligation{WorkspaceID: ws, Title: "   ", Type: TypeContent})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(context.Background(), Obligation{WorkspaceID: ws, Title: "Podcast ad read", Type: "podcast"})
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.Create(context.Background(), Obligation{
		WorkspaceID: ws, Title: "Podcast ad read", Type: TypeContent, Status: "archived",
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateObligationDefaultsPending(t *testing.T) {
	svc := NewService(newMemoryObligationRepo())

	o, err := svc.Create(context.Background(), Obligation{
		WorkspaceID: uuid.New(), Title: "Race kit photos", Type: TypeRace,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, o.ID)
	require.Equal(t, StatusPending, o.Status)
}

func TestSetObligationStatus(t *testing.T) {
	repo := newMemoryObligationRepo()
	svc := NewService(repo)
	ws := uuid.New()

	o, err := svc.Create(context.Background(), Obligation{WorkspaceID: ws, Title: "Launch post", Type: TypeContent})
	require.NoError(t, err)

	require.ErrorIs(t, svc.SetStatus(context.Background(), ws, o.ID, "finished"), ErrInvalidStatus)
	require.NoError(t, svc.SetStatus(context.Background(), ws, o.ID, StatusDone))

	got, err := svc.Get(context.Background(), ws, o.ID)
	require.NoError(t, err)
	require.Equal(t, StatusDone, got.Status)
	require.False(t, got.Status.Open())
}

func TestListOpenOnly(t *testing.T) {
	repo := newMemoryObligationRepo()
	svc := NewService(repo)
	ws := uuid.New()

	open, err := svc.Create(context.Background(), Obligation{WorkspaceID: ws, Title: "Monthly recap", Type: TypeAdmin})
	require.NoError(t, err)
	done, err := svc.Create(context.Background(), Obligation{
		WorkspaceID: ws, Title: "Expo booth", Type: TypeAppearance, Status: StatusDone,
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ws, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	openOnly, err := svc.List(context.Background(), ws, true)
	require.NoError(t, err)
	require.Len(t, openOnly, 1)
	require.Equal(t, open.ID, openOnly[0].ID)
	require.NotEqual(t, done.ID, openOnly[0].ID)
}
