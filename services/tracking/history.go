package tracking

import (
	"fmt"

	parcelModel "quickzone-backend/models/parcel"

	"gorm.io/gorm"
)

// HistoryStore manages the append-only parcel_tracking_history log.
type HistoryStore struct {
	db *gorm.DB
}

func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// AppendRecord inserts one history row inside the caller's transaction. A
// foreign-key violation (unknown parcel, mission or actor) or connectivity
// loss propagates unchanged and must fail the calling request.
func (s *HistoryStore) AppendRecord(tx *gorm.DB, parcelID uint, newStatus parcelModel.ParcelStatus,
	previousStatus *parcelModel.ParcelStatus, missionID, actorID *uint, location, notes *string) error {

	record := parcelModel.TrackingHistoryRecord{
		ParcelID:       parcelID,
		Status:         newStatus,
		PreviousStatus: previousStatus,
		MissionID:      missionID,
		UpdatedBy:      actorID,
		Location:       location,
		Notes:          notes,
	}

	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to append tracking history for parcel %d: %w", parcelID, err)
	}
	return nil
}

// ListForParcel returns all history rows of a parcel ordered by created_at
// ascending, the order the timeline reconstructor consumes.
func (s *HistoryStore) ListForParcel(parcelID uint) ([]parcelModel.TrackingHistoryRecord, error) {
	var records []parcelModel.TrackingHistoryRecord
	err := s.db.Preload("User").
		Where("parcel_id = ?", parcelID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking history for parcel %d: %w", parcelID, err)
	}
	return records, nil
}

// ListForParcelDesc returns the same rows newest first, the order the
// dashboard displays them in.
func (s *HistoryStore) ListForParcelDesc(parcelID uint) ([]parcelModel.TrackingHistoryRecord, error) {
	var records []parcelModel.TrackingHistoryRecord
	err := s.db.Preload("User").
		Where("parcel_id = ?", parcelID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking history for parcel %d: %w", parcelID, err)
	}
	return records, nil
}

// Backfill inserts one initial history row per parcel that has none yet,
// using the parcel's current status and creation date. The NOT IN guard
// makes re-runs insert nothing, so the operation is idempotent. Returns the
// number of rows inserted.
func (s *HistoryStore) Backfill() (int64, error) {
	result := s.db.Exec(`
		INSERT INTO parcel_tracking_history (parcel_id, status, previous_status, location, notes, created_at)
		SELECT p.id, p.status, NULL, NULL, 'Historique initial (reprise)', p.created_at
		FROM parcels p
		WHERE p.id NOT IN (SELECT DISTINCT parcel_id FROM parcel_tracking_history)
	`)
	if result.Error != nil {
		return 0, fmt.Errorf("backfill failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
