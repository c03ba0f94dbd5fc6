package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/calebo95/athlete-portal/internal/shared"
)

type memoryInvoiceRepo struct {
	invoices map[uuid.UUID]*Invoice
	failNext error
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{invoices: make(map[uuid.UUID]*Invoice)}
}

func (r *memoryInvoiceRepo) Get(ctx context.Context, workspaceID, id uuid.UUID) (*Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	cp := *inv
	cp.Items = append([]LineItem(nil), inv.Items...)
	return &cp, nil
}

func (r *memoryInvoiceRepo) List(ctx context.Context, workspaceID uuid.UUID, req ListRequest) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range r.invoices {
		if inv.WorkspaceID != workspaceID {
			continue
		}
		if len(req.Statuses) > 0 {
			match := false
			for _, s := range req.Statuses {
				if inv.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *memoryInvoiceRepo) Create(ctx context.Context, inv *Invoice) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	cp := *inv
	cp.Items = append([]LineItem(nil), inv.Items...)
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memoryInvoiceRepo) Replace(ctx context.Context, inv *Invoice) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if _, ok := r.invoices[inv.ID]; !ok {
		return ErrNotFound
	}
	cp := *inv
	cp.Items = append([]LineItem(nil), inv.Items...)
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memoryInvoiceRepo) UpdateStatus(ctx context.Context, workspaceID, id uuid.UUID, status Status, sentDate, paidDate *shared.Date) error {
	inv, ok := r.invoices[id]
	if !ok || inv.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	inv.Status = status
	inv.SentDate = sentDate
	inv.PaidDate = paidDate
	return nil
}

func newTestService(repo RepositoryPort, today shared.Date) *Service {
	return NewService(repo, nil, nil, Lifecycle{}, func() shared.Date { return today })
}

var serviceToday = shared.NewDate(2025, time.August, 31)

func TestServiceCreateComputesAmount(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws, user := uuid.New(), uuid.New()

	inv, err := svc.Create(context.Background(), ws, user, SaveInput{
		Status: StatusDraft,
		Items: []LineItemInput{
			{Description: "Post", Quantity: "4", UnitPrice: "250"},
			{Description: "Story", Quantity: "2", UnitPrice: "100.25"},
		},
	})
	require.NoError(t, err)
	require.InDelta(t, 4*250+2*100.25, inv.Amount, 1e-9)
	require.Len(t, inv.Items, 2)
	require.Equal(t, 1, inv.Items[0].LineNo)
	require.Equal(t, 2, inv.Items[1].LineNo)
	require.Equal(t, user, *inv.CreatedBy)
	require.Nil(t, inv.SentDate)
	require.Nil(t, inv.PaidDate)

	stored, err := repo.Get(context.Background(), ws, inv.ID)
	require.NoError(t, err)
	require.Equal(t, inv.Amount, stored.Amount)
}

func TestServiceCreateEmptyInvoiceNoWrite(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "  ", Quantity: "1", UnitPrice: "1"}},
	})
	require.ErrorIs(t, err, ErrEmptyInvoice)
	require.Empty(t, repo.invoices)
}

func TestServiceCreateSentBackfillsDate(t *testing.T) {
	svc := newTestService(newMemoryInvoiceRepo(), serviceToday)

	inv, err := svc.Create(context.Background(), uuid.New(), uuid.New(), SaveInput{
		Status: StatusSent,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)
	require.NotNil(t, inv.SentDate)
	require.True(t, inv.SentDate.Equal(serviceToday))
}

func TestServiceCreateSentKeepsExplicitDate(t *testing.T) {
	svc := newTestService(newMemoryInvoiceRepo(), serviceToday)
	explicit := shared.NewDate(2025, time.August, 1)

	inv, err := svc.Create(context.Background(), uuid.New(), uuid.New(), SaveInput{
		Status:   StatusSent,
		SentDate: &explicit,
		Items:    []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)
	require.True(t, inv.SentDate.Equal(explicit))
}

func TestServiceEditReplacesItemSet(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws, user := uuid.New(), uuid.New()

	inv, err := svc.Create(context.Background(), ws, user, SaveInput{
		Status: StatusDraft,
		Items: []LineItemInput{
			{Description: "Old A", Quantity: "1", UnitPrice: "100"},
			{Description: "Old B", Quantity: "1", UnitPrice: "200"},
		},
	})
	require.NoError(t, err)

	edited, err := svc.Edit(context.Background(), ws, inv.ID, SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "New only", Quantity: "3", UnitPrice: "50"}},
	})
	require.NoError(t, err)
	require.Len(t, edited.Items, 1)
	require.Equal(t, "New only", edited.Items[0].Description)
	require.Equal(t, 1, edited.Items[0].LineNo)
	require.Equal(t, 150.0, edited.Amount)

	stored, err := repo.Get(context.Background(), ws, inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
}

func TestServiceEditFailureKeepsOldSet(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws := uuid.New()

	inv, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Original", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)

	repo.failNext = ErrDuplicateNumber
	_, err = svc.Edit(context.Background(), ws, inv.ID, SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Replacement", Quantity: "1", UnitPrice: "999"}},
	})
	require.ErrorIs(t, err, ErrDuplicateNumber)

	stored, err := repo.Get(context.Background(), ws, inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	require.Equal(t, "Original", stored.Items[0].Description)
	require.Equal(t, 100.0, stored.Amount)
}

func TestServiceEditNumberImmutable(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws := uuid.New()
	number := "INV-001"

	inv, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Number: &number,
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)

	other := "INV-002"
	_, err = svc.Edit(context.Background(), ws, inv.ID, SaveInput{
		Number: &other,
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.ErrorIs(t, err, ErrNumberImmutable)

	_, err = svc.Edit(context.Background(), ws, inv.ID, SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.ErrorIs(t, err, ErrNumberImmutable)
}

func TestServiceEditCanSetNumberWhenUnset(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws := uuid.New()

	inv, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)

	number := "INV-100"
	edited, err := svc.Edit(context.Background(), ws, inv.ID, SaveInput{
		Number: &number,
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)
	require.Equal(t, "INV-100", *edited.Number)
}

func TestQuickAndEditPathsStoreSameDate(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws := uuid.New()

	quick, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)
	quick, err = svc.MarkSent(context.Background(), ws, quick.ID)
	require.NoError(t, err)

	form, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Status: StatusSent,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)

	require.True(t, quick.SentDate.Equal(*form.SentDate))
}

func TestServiceMarkPaidSetsBothDatesSameDay(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := newTestService(repo, serviceToday)
	ws := uuid.New()

	inv, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), ws, inv.ID)
	require.NoError(t, err)
	require.True(t, paid.SentDate.Equal(serviceToday))
	require.True(t, paid.PaidDate.Equal(serviceToday))

	stored, err := repo.Get(context.Background(), ws, inv.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, stored.Status)
	require.True(t, stored.SentDate.Equal(serviceToday))
}

func TestServiceSetStatusUnknownInvoice(t *testing.T) {
	svc := newTestService(newMemoryInvoiceRepo(), serviceToday)
	_, err := svc.SetStatus(context.Background(), uuid.New(), uuid.New(), StatusSent)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceRestrictVoidConfig(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo, nil, nil, Lifecycle{RestrictVoid: true}, func() shared.Date { return serviceToday })
	ws := uuid.New()

	inv, err := svc.Create(context.Background(), ws, uuid.New(), SaveInput{
		Status: StatusDraft,
		Items:  []LineItemInput{{Description: "Post", Quantity: "1", UnitPrice: "100"}},
	})
	require.NoError(t, err)

	_, err = svc.Void(context.Background(), ws, inv.ID)
	require.NoError(t, err)

	_, err = svc.MarkSent(context.Background(), ws, inv.ID)
	require.ErrorIs(t, err, ErrVoidLocked)
}
