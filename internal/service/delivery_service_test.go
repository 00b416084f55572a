package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/storage"
)

type fakeDeliveryRepo struct {
	records map[int64]domain.DeliveryRecord
	nextID  int64
	failDel map[int64]bool
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{records: map[int64]domain.DeliveryRecord{}, nextID: 1, failDel: map[int64]bool{}}
}

func (r *fakeDeliveryRepo) Create(_ context.Context, record *domain.DeliveryRecord) error {
	record.ID = r.nextID
	r.nextID++
	r.records[record.ID] = *record
	return nil
}

func (r *fakeDeliveryRepo) List(_ context.Context) ([]domain.DeliveryRecord, error) {
	out := make([]domain.DeliveryRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeDeliveryRepo) ListExpired(_ context.Context, now time.Time) ([]domain.DeliveryRecord, error) {
	var out []domain.DeliveryRecord
	for _, rec := range r.records {
		if rec.ExpireAt <= now.UnixMilli() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) Delete(_ context.Context, id int64) error {
	if r.failDel[id] {
		return errors.New("delete failed")
	}
	delete(r.records, id)
	return nil
}

type fakeImageStore struct {
	deleted  []string
	failKeys map[string]bool
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{failKeys: map[string]bool{}}
}

func (s *fakeImageStore) Upload(_ context.Context, key, _ string, _ io.Reader, _ int64) (*storage.UploadedImage, error) {
	return &storage.UploadedImage{URL: "https://img.test/" + key, Key: key}, nil
}

func (s *fakeImageStore) Delete(_ context.Context, key string) error {
	if s.failKeys[key] {
		return errors.New("object delete failed")
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func seedRecord(repo *fakeDeliveryRepo, key string, createdAt time.Time) *domain.DeliveryRecord {
	record := &domain.DeliveryRecord{
		ImageURL:  "https://img.test/" + key,
		ImageKey:  key,
		CreatedAt: createdAt,
		ExpireAt:  createdAt.Add(domain.DeliveryTTL).UnixMilli(),
	}
	_ = repo.Create(context.Background(), record)
	return record
}

func TestSweepDeletesOnlyExpired(t *testing.T) {
	repo := newFakeDeliveryRepo()
	images := newFakeImageStore()
	svc := NewDeliveryService(repo, images)

	now := time.Now()
	seedRecord(repo, "old.jpg", now.Add(-49*time.Hour))
	fresh := seedRecord(repo, "fresh.jpg", now.Add(-time.Hour))

	result, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if result.Checked != 1 || result.Deleted != 1 {
		t.Errorf("checked=%d deleted=%d, want 1 and 1", result.Checked, result.Deleted)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if _, ok := repo.records[fresh.ID]; !ok {
		t.Error("unexpired record was deleted")
	}
	if len(images.deleted) != 1 || images.deleted[0] != "old.jpg" {
		t.Errorf("deleted images = %v, want [old.jpg]", images.deleted)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	repo := newFakeDeliveryRepo()
	images := newFakeImageStore()
	svc := NewDeliveryService(repo, images)

	now := time.Now()
	seedRecord(repo, "a.jpg", now.Add(-72*time.Hour))
	seedRecord(repo, "b.jpg", now.Add(-50*time.Hour))

	first, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("first Sweep: %v", err)
	}
	if first.Deleted != 2 {
		t.Fatalf("first sweep deleted %d, want 2", first.Deleted)
	}

	second, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if second.Checked != 0 || second.Deleted != 0 {
		t.Errorf("second sweep checked=%d deleted=%d, want 0 and 0", second.Checked, second.Deleted)
	}
	if second.Status != "ok" {
		t.Errorf("second sweep status = %q, want ok", second.Status)
	}
}

func TestSweepImageFailureDoesNotBlockRowDelete(t *testing.T) {
	repo := newFakeDeliveryRepo()
	images := newFakeImageStore()
	svc := NewDeliveryService(repo, images)

	now := time.Now()
	bad := seedRecord(repo, "bad.jpg", now.Add(-60*time.Hour))
	good := seedRecord(repo, "good.jpg", now.Add(-60*time.Hour))
	images.failKeys["bad.jpg"] = true

	result, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	// The image and row attempts are independent: both rows go even
	// though one image delete failed.
	if result.Checked != 2 || result.Deleted != 2 {
		t.Errorf("checked=%d deleted=%d, want 2 and 2", result.Checked, result.Deleted)
	}
	if len(result.Errors) != 1 || result.Errors[0].ID != bad.ID {
		t.Errorf("errors = %v, want one error for record %d", result.Errors, bad.ID)
	}
	if result.Status != "ok" {
		t.Errorf("status = %q, want ok even with collected errors", result.Status)
	}
	if _, ok := repo.records[bad.ID]; ok {
		t.Error("record with failed image delete should still have been removed")
	}
	if _, ok := repo.records[good.ID]; ok {
		t.Error("healthy expired record should have been deleted")
	}
}

func TestSweepKeepsRowOnRowDeleteFailure(t *testing.T) {
	repo := newFakeDeliveryRepo()
	images := newFakeImageStore()
	svc := NewDeliveryService(repo, images)

	now := time.Now()
	stuck := seedRecord(repo, "stuck.jpg", now.Add(-60*time.Hour))
	repo.failDel[stuck.ID] = true

	result, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if result.Deleted != 0 {
		t.Errorf("deleted = %d, want 0", result.Deleted)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", result.Errors)
	}
	if result.Status != "ok" {
		t.Errorf("status = %q, want ok with errors embedded", result.Status)
	}
	if len(images.deleted) != 1 || images.deleted[0] != "stuck.jpg" {
		t.Errorf("deleted images = %v, want [stuck.jpg]", images.deleted)
	}
	if _, ok := repo.records[stuck.ID]; !ok {
		t.Error("record should be retained when its row delete fails")
	}
}

func TestSweepCollectsBothFailuresForOneRecord(t *testing.T) {
	repo := newFakeDeliveryRepo()
	images := newFakeImageStore()
	svc := NewDeliveryService(repo, images)

	now := time.Now()
	doomed := seedRecord(repo, "doomed.jpg", now.Add(-60*time.Hour))
	images.failKeys["doomed.jpg"] = true
	repo.failDel[doomed.ID] = true

	result, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if result.Deleted != 0 {
		t.Errorf("deleted = %d, want 0", result.Deleted)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %v, want one per failed attempt", result.Errors)
	}
	for i, sweepErr := range result.Errors {
		if sweepErr.ID != doomed.ID {
			t.Errorf("errors[%d].ID = %d, want %d", i, sweepErr.ID, doomed.ID)
		}
	}
}
