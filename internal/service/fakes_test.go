package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/repository"
	finestore "traffic-fines-backend/internal/repository/bolt"
)

// newFineStore opens a real fine store in a temp directory.
func newFineStore(t *testing.T) repository.FineRepository {
	t.Helper()
	db, err := finestore.Open(filepath.Join(t.TempDir(), "fines.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return finestore.NewFineRepository(db)
}

type fakeOwners struct {
	mu     sync.Mutex
	owners map[string]*domain.Owner
}

func newFakeOwners(owners ...*domain.Owner) *fakeOwners {
	f := &fakeOwners{owners: map[string]*domain.Owner{}}
	for _, o := range owners {
		f.owners[o.TaxID] = o
	}
	return f
}

func (f *fakeOwners) GetByTaxID(_ context.Context, taxID string) (*domain.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.owners[taxID]
	if !ok {
		return nil, domain.ErrOwnerNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOwners) SetHasFines(_ context.Context, taxID string, hasFines bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.owners[taxID]
	if !ok {
		return domain.ErrOwnerNotFound
	}
	o.HasFines = hasFines
	return nil
}

func (f *fakeOwners) hasFines(taxID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owners[taxID].HasFines
}

type fakeVehicles map[string]*domain.Vehicle

func (f fakeVehicles) GetByPlate(_ context.Context, plate string) (*domain.Vehicle, error) {
	v, ok := f[plate]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	cp := *v
	return &cp, nil
}

// fakeLedger keeps entries in memory. The fail* fields inject errors.
type fakeLedger struct {
	mu         sync.Mutex
	entries    map[string]domain.LedgerEntry
	nextID     int64
	failCreate error
	failUpdate error
	failDelete error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: map[string]domain.LedgerEntry{}}
}

func (l *fakeLedger) Create(_ context.Context, e *domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failCreate != nil {
		return l.failCreate
	}
	l.nextID++
	e.ID = l.nextID
	l.entries[e.FineReference] = *e
	return nil
}

func (l *fakeLedger) GetByFineReference(_ context.Context, reference string) (*domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[reference]
	if !ok {
		return nil, domain.ErrLedgerNotFound
	}
	return &e, nil
}

func (l *fakeLedger) UpdateByFineReference(_ context.Context, e *domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failUpdate != nil {
		return l.failUpdate
	}
	cur, ok := l.entries[e.FineReference]
	if !ok {
		return domain.ErrLedgerNotFound
	}
	cur.OwnerTaxID, cur.Paid, cur.Reason, cur.Amount = e.OwnerTaxID, e.Paid, e.Reason, e.Amount
	l.entries[e.FineReference] = cur
	return nil
}

func (l *fakeLedger) DeleteByFineReference(_ context.Context, reference string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failDelete != nil {
		return l.failDelete
	}
	if _, ok := l.entries[reference]; !ok {
		return domain.ErrLedgerNotFound
	}
	delete(l.entries, reference)
	return nil
}

func (l *fakeLedger) MarkPaid(_ context.Context, reference string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[reference]
	if !ok {
		return domain.ErrLedgerNotFound
	}
	e.Paid = true
	l.entries[reference] = e
	return nil
}

func (l *fakeLedger) ListByOwner(_ context.Context, ownerTaxID string, _, _ int32) ([]domain.LedgerEntry, int32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range l.entries {
		if e.OwnerTaxID == ownerTaxID {
			out = append(out, e)
		}
	}
	return out, int32(len(out)), nil
}

func (l *fakeLedger) ListAll(_ context.Context) ([]domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LedgerEntry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	return out, nil
}

func (l *fakeLedger) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingUpdates wraps a fine store and rejects Update once err is set.
type failingUpdates struct {
	repository.FineRepository
	err error
}

func (f *failingUpdates) Update(ctx context.Context, fine *domain.Fine) error {
	if f.err != nil {
		return f.err
	}
	return f.FineRepository.Update(ctx, fine)
}
