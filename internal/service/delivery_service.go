package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/repository"
	"github.com/aquatrack/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// SweepError records one failed cleanup attempt. The sweep keeps going
// past failures, so a single bad record never blocks the rest.
type SweepError struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// SweepResult summarizes one cleanup run.
type SweepResult struct {
	Status  string       `json:"status"`
	Checked int          `json:"checked"`
	Deleted int          `json:"deleted"`
	Errors  []SweepError `json:"errors"`
}

type DeliveryService struct {
	deliveries repository.DeliveryRepository
	images     storage.ImageStore
}

func NewDeliveryService(deliveries repository.DeliveryRepository, images storage.ImageStore) *DeliveryService {
	return &DeliveryService{deliveries: deliveries, images: images}
}

// CreateRecord uploads the photo and stores a delivery record whose
// expiry deadline is fixed at creation time.
func (s *DeliveryService) CreateRecord(ctx context.Context, filename, contentType string, r io.Reader, size int64, notes string) (*domain.DeliveryRecord, error) {
	if size <= 0 {
		return nil, domain.Validationf("an image file is required")
	}

	now := time.Now()
	key := fmt.Sprintf("deliveries/%d%s", now.UnixNano(), sanitizeExt(filename))
	uploaded, err := s.images.Upload(ctx, key, contentType, r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload delivery image: %w", err)
	}

	record := &domain.DeliveryRecord{
		ImageURL:  uploaded.URL,
		ImageKey:  uploaded.Key,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
		ExpireAt:  now.Add(domain.DeliveryTTL).UnixMilli(),
	}
	if err := s.deliveries.Create(ctx, record); err != nil {
		// The record row failed but the object is already stored; remove
		// it so no orphaned image lingers past its would-be TTL.
		if delErr := s.images.Delete(ctx, uploaded.Key); delErr != nil {
			log.Warn().Err(delErr).Str("key", uploaded.Key).Msg("deliveries: orphaned image cleanup failed")
		}
		return nil, err
	}
	return record, nil
}

func (s *DeliveryService) ListRecords(ctx context.Context) ([]domain.DeliveryRecord, error) {
	return s.deliveries.List(ctx)
}

// Sweep deletes every record whose deadline has passed: the image and the
// row are each attempted for every record, and a failure in one never
// blocks the other. Failures are collected per attempt, so a record can
// contribute two errors. The status is always "ok"; callers inspect the
// error list. Running a sweep twice is safe since the first pass removes
// what the second would find.
func (s *DeliveryService) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	expired, err := s.deliveries.ListExpired(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Status: "ok", Checked: len(expired), Errors: []SweepError{}}
	for _, record := range expired {
		if record.ImageKey != "" {
			if err := s.images.Delete(ctx, record.ImageKey); err != nil {
				result.Errors = append(result.Errors, SweepError{ID: record.ID, Error: err.Error()})
				log.Warn().Err(err).Int64("id", record.ID).Msg("deliveries: expired image delete failed")
			}
		}
		if err := s.deliveries.Delete(ctx, record.ID); err != nil {
			result.Errors = append(result.Errors, SweepError{ID: record.ID, Error: err.Error()})
			log.Warn().Err(err).Int64("id", record.ID).Msg("deliveries: expired record delete failed")
			continue
		}
		result.Deleted++
	}

	log.Info().
		Int("checked", result.Checked).
		Int("deleted", result.Deleted).
		Int("errors", len(result.Errors)).
		Msg("deliveries: sweep complete")
	return result, nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
