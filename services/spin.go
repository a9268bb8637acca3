package services

import (
	"encoding/json"
	"errors"
	"math/rand"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/talemaro/wheel-backend/models"
	"github.com/talemaro/wheel-backend/utils/logger"
)

// SpinService picks a uniformly random active entry server-side and keeps a
// history of results. Clients may still animate their own spin; this is the
// authoritative pick for callers that want one.
type SpinService struct {
	db *gorm.DB
}

func NewSpinService(db *gorm.DB) *SpinService {
	return &SpinService{db: db}
}

// Spin selects a random non-disabled entry on the wheel and records the
// result with a snapshot of the winning entry.
func (s *SpinService) Spin(wheelID uint) (*models.SpinResult, error) {
	var wheel models.Wheel
	err := s.db.First(&wheel, wheelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var active []models.Entry
	err = s.db.Preload("Person").
		Where("wheel_id = ? AND disabled = ?", wheelID, false).
		Order("created_at ASC, id ASC").
		Find(&active).Error
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, NewValidationError("entries", "Wheel has no active entries")
	}

	winner := active[rand.Intn(len(active))]
	snapshot, err := json.Marshal(winner)
	if err != nil {
		return nil, err
	}

	result := models.SpinResult{
		WheelID: wheelID,
		Entry:   datatypes.JSON(snapshot),
	}
	if err := s.db.Create(&result).Error; err != nil {
		return nil, err
	}

	logger.Infof("Wheel %d spun, entry %d (%s) won", wheelID, winner.ID, winner.Label)
	return &result, nil
}

// History lists a wheel's spin results, most recent first.
func (s *SpinService) History(wheelID uint) ([]models.SpinResult, error) {
	var wheel models.Wheel
	err := s.db.First(&wheel, wheelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var results []models.SpinResult
	err = s.db.Where("wheel_id = ?", wheelID).
		Order("created_at DESC, id DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
