package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"traffic-fines-backend/internal/config"
	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
)

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) Reconcile(ctx context.Context) (*domain.ReconciliationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationReport), args.Error(1)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "debug", "text")
	t.Cleanup(func() { logger.Initialize("info", "text") })
	return &buf
}

func TestReconcileStores(t *testing.T) {
	t.Run("Logs disagreement", func(t *testing.T) {
		buf := captureLogs(t)
		recon := new(mockReconciler)
		recon.On("Reconcile", mock.Anything).Return(&domain.ReconciliationReport{
			FinesChecked:  2,
			LedgerChecked: 1,
			Discrepancies: []domain.Discrepancy{{Type: domain.DiscrepancyMissingLedger, Reference: "ref-1"}},
		}, nil)

		NewJobRunner(&Services{Reconciliation: recon}, &config.Config{}).ReconcileStores()

		recon.AssertExpectations(t)
		assert.Contains(t, buf.String(), "Fine and ledger stores disagree")
		assert.Contains(t, buf.String(), "discrepancies=1")
	})

	t.Run("Clean", func(t *testing.T) {
		buf := captureLogs(t)
		recon := new(mockReconciler)
		recon.On("Reconcile", mock.Anything).Return(&domain.ReconciliationReport{}, nil)

		NewJobRunner(&Services{Reconciliation: recon}, &config.Config{}).ReconcileStores()
		assert.Contains(t, buf.String(), "Fine and ledger stores agree")
	})

	t.Run("Failure is logged", func(t *testing.T) {
		buf := captureLogs(t)
		recon := new(mockReconciler)
		recon.On("Reconcile", mock.Anything).Return(nil, errors.New("ledger unreachable"))

		NewJobRunner(&Services{Reconciliation: recon}, &config.Config{}).ReconcileStores()
		assert.Contains(t, buf.String(), "ledger unreachable")
		assert.Contains(t, buf.String(), "Job completed")
	})
}

func TestRunWithRecovery(t *testing.T) {
	buf := captureLogs(t)
	jr := NewJobRunner(&Services{}, &config.Config{})

	assert.NotPanics(t, func() {
		jr.runWithRecovery("Boom", func() { panic("nil ledger") })
	})
	assert.Contains(t, buf.String(), "Job panicked")
	assert.NotContains(t, buf.String(), "Job completed")
}

func TestRunJob(t *testing.T) {
	captureLogs(t)
	recon := new(mockReconciler)
	recon.On("Reconcile", mock.Anything).Return(&domain.ReconciliationReport{}, nil).Once()
	jr := NewJobRunner(&Services{Reconciliation: recon}, &config.Config{})

	assert.True(t, jr.RunJob("reconcile"))
	assert.False(t, jr.RunJob("billing"))
	recon.AssertExpectations(t)
}
