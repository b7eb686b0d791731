package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workout-log/internal/domain"
	"workout-log/internal/repository"
	"workout-log/internal/storage"
)

// ExportService writes a snapshot of an identity's complete workout history
// to object storage and hands back a short-lived download URL. Each identity
// has at most one snapshot; a new export overwrites the previous one.
type ExportService interface {
	ExportHistory(ctx context.Context, ownerID string) (downloadURL string, err error)
	DeleteExport(ctx context.Context, ownerID string) error
}

// historyExport is the JSON document uploaded to the bucket.
type historyExport struct {
	Identity    string                 `json:"identity"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Workouts    []domain.WorkoutDetail `json:"workouts"`
}

type exportService struct {
	workoutRepo repository.WorkoutRepository
	objects     storage.ObjectStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(workoutRepo repository.WorkoutRepository, objects storage.ObjectStorage) ExportService {
	return &exportService{
		workoutRepo: workoutRepo,
		objects:     objects,
	}
}

func (s *exportService) ExportHistory(ctx context.Context, ownerID string) (string, error) {
	if ownerID == "" {
		return "", domain.ErrUnauthorized
	}

	workouts, err := s.workoutRepo.ListByOwner(ctx, ownerID, nil)
	if err != nil {
		return "", storageFailure("export history", "", ownerID, err)
	}

	export := historyExport{
		Identity:    ownerID,
		GeneratedAt: time.Now().UTC(),
		Workouts:    make([]domain.WorkoutDetail, 0, len(workouts)),
	}
	for _, w := range workouts {
		// Details come through the same repo path the read API uses, so the
		// exported ordering matches what the owner sees.
		detail, err := s.workoutRepo.GetDetail(ctx, w.ID)
		if err != nil {
			return "", storageFailure("export history", w.ID, ownerID, err)
		}
		export.Workouts = append(export.Workouts, *detail)
	}

	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	objectKey := exportObjectKey(ownerID)
	if err := s.objects.Upload(ctx, objectKey, "application/json", body); err != nil {
		return "", storageFailure("export history", objectKey, ownerID, err)
	}

	url, err := s.objects.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", storageFailure("export history", objectKey, ownerID, err)
	}
	return url, nil
}

// DeleteExport removes the caller's snapshot from the bucket. Deleting a key
// that was never exported is a no-op.
func (s *exportService) DeleteExport(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	objectKey := exportObjectKey(ownerID)
	if err := s.objects.DeleteObject(ctx, objectKey); err != nil {
		return storageFailure("delete export", objectKey, ownerID, err)
	}
	return nil
}

// exportObjectKey is stable per identity so re-exports overwrite in place and
// a delete needs no listing.
func exportObjectKey(ownerID string) string {
	return fmt.Sprintf("exports/%s/history.json", ownerID)
}
