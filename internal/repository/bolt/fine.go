// Package bolt provides the BoltDB-backed fine document store.
//
// Every fine is one CBOR document in the fines bucket, keyed by reference
// number. Three index buckets hold one nested bucket per owner tax id,
// officer id and vehicle plate; each nested bucket lists the references of the
// fines carrying that key. Document and index writes share one bolt
// transaction, so the store itself is never half-written.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "github.com/boltdb/bolt"

	"traffic-fines-backend/internal/codec"
	"traffic-fines-backend/internal/domain"
	"traffic-fines-backend/internal/logger"
	"traffic-fines-backend/internal/repository"
)

var (
	finesBucket     = []byte("fines")
	byOwnerBucket   = []byte("fines_by_owner")
	byOfficerBucket = []byte("fines_by_officer")
	byPlateBucket   = []byte("fines_by_plate")
)

// ErrDuplicateReference is returned when a reference number is already taken.
var ErrDuplicateReference = errors.New("fine reference number already exists")

type fineRepository struct {
	db *bolt.DB
}

// Open opens (or creates) the fine store at path and ensures all buckets exist.
func Open(path string, timeout time.Duration) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("open fine store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{finesBucket, byOwnerBucket, byOfficerBucket, byPlateBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init fine store buckets: %w", err)
	}

	return db, nil
}

func NewFineRepository(db *bolt.DB) repository.FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) Create(ctx context.Context, f *domain.Fine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.DatabaseCall("PUT", "fines", "reference", f.ReferenceNumber)

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(finesBucket)
		if b.Get([]byte(f.ReferenceNumber)) != nil {
			return ErrDuplicateReference
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		f.Seq = seq
		if err := putFine(b, f); err != nil {
			return err
		}
		return addIndexes(tx, f)
	})
	logger.DatabaseResult("PUT", 1, err, "reference", f.ReferenceNumber)
	return err
}

func (r *fineRepository) GetByReference(ctx context.Context, reference string) (*domain.Fine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var f *domain.Fine
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		f, err = getFine(tx.Bucket(finesBucket), []byte(reference))
		return err
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Update replaces the stored document. The insertion sequence is kept; index
// entries follow the new owner, officer and plate.
func (r *fineRepository) Update(ctx context.Context, f *domain.Fine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.DatabaseCall("PUT", "fines", "reference", f.ReferenceNumber)

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(finesBucket)
		existing, err := getFine(b, []byte(f.ReferenceNumber))
		if err != nil {
			return err
		}
		if err := removeIndexes(tx, existing); err != nil {
			return err
		}
		f.Seq = existing.Seq
		if err := putFine(b, f); err != nil {
			return err
		}
		return addIndexes(tx, f)
	})
	logger.DatabaseResult("PUT", 1, err, "reference", f.ReferenceNumber)
	return err
}

func (r *fineRepository) Delete(ctx context.Context, reference string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.DatabaseCall("DELETE", "fines", "reference", reference)

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(finesBucket)
		existing, err := getFine(b, []byte(reference))
		if err != nil {
			return err
		}
		if err := b.Delete([]byte(reference)); err != nil {
			return err
		}
		return removeIndexes(tx, existing)
	})
	logger.DatabaseResult("DELETE", 1, err, "reference", reference)
	return err
}

func (r *fineRepository) CountByOwner(ctx context.Context, ownerTaxID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := r.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(byOwnerBucket).Bucket([]byte(ownerTaxID))
		if idx == nil {
			return nil
		}
		return idx.ForEach(func(_, _ []byte) error {
			count++
			return nil
		})
	})
	return count, err
}

func (r *fineRepository) List(ctx context.Context, filter domain.FineFilter, offset, limit int) ([]domain.Fine, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if offset < 0 || limit < 0 {
		return nil, 0, domain.NewValidationError("page", "offset and limit must not be negative")
	}
	indexName, err := indexFor(filter.Selector)
	if err != nil {
		return nil, 0, err
	}
	logger.DatabaseCall("SCAN", string(indexName), "key", filter.Key)

	var matched []domain.Fine
	err = r.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(indexName).Bucket([]byte(filter.Key))
		if idx == nil {
			return nil
		}
		fines := tx.Bucket(finesBucket)
		return idx.ForEach(func(ref, _ []byte) error {
			f, err := getFine(fines, ref)
			if err != nil {
				return fmt.Errorf("index %s/%s points at %s: %w", indexName, filter.Key, ref, err)
			}
			if filter.Matches(f) {
				matched = append(matched, *f)
			}
			return nil
		})
	})
	logger.DatabaseResult("SCAN", int64(len(matched)), err, "key", filter.Key)
	if err != nil {
		return nil, 0, err
	}

	sortNewestFirst(matched)

	total := len(matched)
	if offset >= total {
		return []domain.Fine{}, total, nil
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func (r *fineRepository) ListAll(ctx context.Context) ([]domain.Fine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fines := []domain.Fine{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(finesBucket).ForEach(func(_, v []byte) error {
			var f domain.Fine
			if err := codec.Unmarshal(v, &f); err != nil {
				return err
			}
			fines = append(fines, f)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return fines, nil
}

// sortNewestFirst orders by creation time descending; fines created at the
// same instant keep their insertion order.
func sortNewestFirst(fines []domain.Fine) {
	sort.SliceStable(fines, func(i, j int) bool {
		if !fines[i].CreatedAt.Equal(fines[j].CreatedAt) {
			return fines[i].CreatedAt.After(fines[j].CreatedAt)
		}
		return fines[i].Seq < fines[j].Seq
	})
}

func indexFor(selector domain.FineSelector) ([]byte, error) {
	switch selector {
	case domain.SelectByOwner:
		return byOwnerBucket, nil
	case domain.SelectByOfficer:
		return byOfficerBucket, nil
	case domain.SelectByVehicle:
		return byPlateBucket, nil
	}
	return nil, domain.NewValidationError("selector", fmt.Sprintf("unknown selector %q", selector))
}

func getFine(b *bolt.Bucket, ref []byte) (*domain.Fine, error) {
	v := b.Get(ref)
	if v == nil {
		return nil, domain.ErrFineNotFound
	}
	var f domain.Fine
	if err := codec.Unmarshal(v, &f); err != nil {
		return nil, fmt.Errorf("decode fine %s: %w", ref, err)
	}
	return &f, nil
}

func putFine(b *bolt.Bucket, f *domain.Fine) error {
	data, err := codec.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode fine %s: %w", f.ReferenceNumber, err)
	}
	return b.Put([]byte(f.ReferenceNumber), data)
}

func indexKeys(f *domain.Fine) map[string]string {
	return map[string]string{
		string(byOwnerBucket):   f.Owner.TaxID,
		string(byOfficerBucket): f.Officer.ID,
		string(byPlateBucket):   f.Vehicle.Plate,
	}
}

func addIndexes(tx *bolt.Tx, f *domain.Fine) error {
	for name, key := range indexKeys(f) {
		if key == "" {
			continue
		}
		idx, err := tx.Bucket([]byte(name)).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		if err := idx.Put([]byte(f.ReferenceNumber), []byte{}); err != nil {
			return err
		}
	}
	return nil
}

func removeIndexes(tx *bolt.Tx, f *domain.Fine) error {
	for name, key := range indexKeys(f) {
		if key == "" {
			continue
		}
		parent := tx.Bucket([]byte(name))
		idx := parent.Bucket([]byte(key))
		if idx == nil {
			continue
		}
		if err := idx.Delete([]byte(f.ReferenceNumber)); err != nil {
			return err
		}
		if k, _ := idx.Cursor().First(); k == nil {
			if err := parent.DeleteBucket([]byte(key)); err != nil {
				return err
			}
		}
	}
	return nil
}
