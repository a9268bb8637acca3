package services

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talemaro/wheel-backend/models"
	"github.com/talemaro/wheel-backend/utils/logger"
)

const DefaultSpinDurationSeconds = 5

// WheelService implements wheel and entry mutations plus the person
// find-or-create resolution they depend on.
type WheelService struct {
	db *gorm.DB
}

func NewWheelService(db *gorm.DB) *WheelService {
	return &WheelService{db: db}
}

// WheelPatch carries a partial wheel update. Nil fields are left unchanged.
type WheelPatch struct {
	Name                *string
	SpinDurationSeconds interface{}
}

// EntryPatch carries a partial entry update. Blank label/personName mean "no
// change", never "clear". Disabled is a pointer so absent and false are
// distinguishable.
type EntryPatch struct {
	Label      string
	PersonName string
	Disabled   *bool
}

// CoerceSpinDuration turns loosely typed JSON input into a positive spin
// duration, falling back to the default on missing, non-numeric or
// non-positive values.
func CoerceSpinDuration(v interface{}) int {
	n, ok := coerceInt(v)
	if !ok || n <= 0 {
		return DefaultSpinDurationSeconds
	}
	return n
}

// CoerceCount turns loosely typed JSON input into an entry count, floored
// at one.
func CoerceCount(v interface{}) int {
	n, ok := coerceInt(v)
	if !ok || n < 1 {
		return 1
	}
	return n
}

func coerceInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// ListWheels returns every wheel in creation order with entries and their
// people attached.
func (s *WheelService) ListWheels() ([]models.Wheel, error) {
	var wheels []models.Wheel
	err := s.db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("entries.created_at ASC, entries.id ASC") }).
		Preload("Entries.Person").
		Order("created_at ASC").
		Find(&wheels).Error
	if err != nil {
		return nil, err
	}
	return wheels, nil
}

// GetWheel returns one wheel with entries attached, or ErrNotFound.
func (s *WheelService) GetWheel(id uint) (*models.Wheel, error) {
	var wheel models.Wheel
	err := s.db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("entries.created_at ASC, entries.id ASC") }).
		Preload("Entries.Person").
		First(&wheel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wheel, nil
}

// CreateWheel persists a new wheel with no entries.
func (s *WheelService) CreateWheel(name string, spinDurationSeconds interface{}) (*models.Wheel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "Name is required")
	}

	wheel := models.Wheel{
		Name:                name,
		SpinDurationSeconds: CoerceSpinDuration(spinDurationSeconds),
		Entries:             []models.Entry{},
	}
	if err := s.db.Create(&wheel).Error; err != nil {
		return nil, err
	}

	logger.Infof("Wheel %d (%q) created", wheel.ID, wheel.Name)
	wheel.Entries = []models.Entry{}
	return &wheel, nil
}

// UpdateWheel applies a partial patch and returns the merged wheel with its
// entries.
func (s *WheelService) UpdateWheel(id uint, patch WheelPatch) (*models.Wheel, error) {
	var wheel models.Wheel
	err := s.db.First(&wheel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.SpinDurationSeconds != nil {
		updates["spin_duration_seconds"] = CoerceSpinDuration(patch.SpinDurationSeconds)
	}
	if len(updates) > 0 {
		if err := s.db.Model(&wheel).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetWheel(id)
}

// DeleteWheel removes a wheel and everything hanging off it: entries and spin
// history. People referenced by the deleted entries are kept on purpose; the
// person table doubles as a directory.
func (s *WheelService) DeleteWheel(id uint) error {
	var wheel models.Wheel
	err := s.db.First(&wheel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Entry{}, "wheel_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.SpinResult{}, "wheel_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Wheel{}, id).Error; err != nil {
			return err
		}
		logger.Infof("Wheel %d (%q) deleted", id, wheel.Name)
		return nil
	})
}

// AddEntries creates count entries with the same label, all credited to one
// person resolved by find-or-create. Rows are created sequentially; a failure
// mid-batch is reported and may leave earlier rows in place.
func (s *WheelService) AddEntries(wheelID uint, label, personName string, count int) ([]models.Entry, error) {
	var wheel models.Wheel
	err := s.db.First(&wheel, wheelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, NewValidationError("label", "Label is required")
	}
	personName = strings.TrimSpace(personName)
	if personName == "" {
		return nil, NewValidationError("personName", "personName is required")
	}
	if count < 1 {
		count = 1
	}

	person, err := s.findOrCreatePerson(personName)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, count)
	for i := 0; i < count; i++ {
		entry := models.Entry{
			WheelID:  wheelID,
			Label:    label,
			PersonID: person.ID,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return nil, err
		}
		ids = append(ids, entry.ID)
	}

	var entries []models.Entry
	err = s.db.Preload("Person").
		Where("id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateEntry applies a partial patch to an entry within a wheel. Blank label
// or personName leave the field alone; a personName change rebinds the entry
// through find-or-create without renaming the existing person. When nothing
// effective is supplied the entry is returned unchanged.
func (s *WheelService) UpdateEntry(wheelID, entryID uint, patch EntryPatch) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.First(&entry, "id = ? AND wheel_id = ?", entryID, wheelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if label := strings.TrimSpace(patch.Label); label != "" {
		updates["label"] = label
	}
	if personName := strings.TrimSpace(patch.PersonName); personName != "" {
		person, err := s.findOrCreatePerson(personName)
		if err != nil {
			return nil, err
		}
		updates["person_id"] = person.ID
	}
	if patch.Disabled != nil {
		updates["disabled"] = *patch.Disabled
	}

	if len(updates) > 0 {
		if err := s.db.Model(&entry).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Entry
	if err := s.db.Preload("Person").First(&updated, entry.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEntry removes a single entry from a wheel.
func (s *WheelService) DeleteEntry(wheelID, entryID uint) error {
	var entry models.Entry
	err := s.db.First(&entry, "id = ? AND wheel_id = ?", entryID, wheelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.db.Delete(&models.Entry{}, entry.ID).Error
}

// findOrCreatePerson resolves a display name to a person, matching
// case-insensitively. The insert goes through ON CONFLICT DO NOTHING on the
// normalized-name unique index, so two concurrent calls for a new name end up
// sharing one row; the loser of the race re-reads.
func (s *WheelService) findOrCreatePerson(name string) (*models.Person, error) {
	key := strings.ToLower(name)

	var person models.Person
	err := s.db.First(&person, "name_key = ?", key).Error
	if err == nil {
		return &person, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	person = models.Person{Name: name, NameKey: key}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name_key"}},
		DoNothing: true,
	}).Create(&person).Error
	if err != nil {
		return nil, err
	}
	if person.ID == 0 {
		// Lost the race; the winner's row is there now.
		if err := s.db.First(&person, "name_key = ?", key).Error; err != nil {
			return nil, err
		}
	}
	return &person, nil
}
