package reminders

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestCronTriggerSecret(t *testing.T) {
	repo := newMemoryReminderRepo()
	svc := NewService(slog.Default(), repo, staticDirectory{}, &recordingMailer{}, nil)
	h := NewHandler(slog.Default(), svc, "s3cret")

	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)

	// Wrong secret is rejected before any invoice is read.
	repo.selectErr = nil
	req := httptest.NewRequest(http.MethodPost, "/jobs/invoice-reminders", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, repo.selectSeen.limit)

	req = httptest.NewRequest(http.MethodPost, "/jobs/invoice-reminders", nil)
	req.Header.Set("X-Cron-Secret", "s3cret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"processed":0,"owners_notified":0,"invoices_marked":0}`, rec.Body.String())
}

func TestCronTriggerEmptySecretAlwaysRejected(t *testing.T) {
	svc := NewService(slog.Default(), newMemoryReminderRepo(), staticDirectory{}, &recordingMailer{}, nil)
	h := NewHandler(slog.Default(), svc, "")

	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)

	req := httptest.NewRequest(http.MethodPost, "/jobs/invoice-reminders", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
