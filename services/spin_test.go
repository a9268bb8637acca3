package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talemaro/wheel-backend/models"
)

func TestSpinPicksOnlyActiveEntries(t *testing.T) {
	db := newTestDB(t)
	wheels := NewWheelService(db)
	spins := NewSpinService(db)

	wheel, err := wheels.CreateWheel("Spin Test", nil)
	require.NoError(t, err)
	entries, err := wheels.AddEntries(wheel.ID, "Prize", "Alex", 2)
	require.NoError(t, err)

	disabled := true
	_, err = wheels.UpdateEntry(wheel.ID, entries[0].ID, EntryPatch{Disabled: &disabled})
	require.NoError(t, err)

	// With one of two entries disabled, every spin must land on the other.
	for i := 0; i < 10; i++ {
		result, err := spins.Spin(wheel.ID)
		require.NoError(t, err)
		assert.Equal(t, wheel.ID, result.WheelID)

		var winner models.Entry
		require.NoError(t, json.Unmarshal(result.Entry, &winner))
		assert.Equal(t, entries[1].ID, winner.ID)
	}
}

func TestSpinRequiresActiveEntries(t *testing.T) {
	db := newTestDB(t)
	wheels := NewWheelService(db)
	spins := NewSpinService(db)

	wheel, err := wheels.CreateWheel("Empty", nil)
	require.NoError(t, err)

	var validation *ValidationError
	_, err = spins.Spin(wheel.ID)
	assert.ErrorAs(t, err, &validation)

	entries, err := wheels.AddEntries(wheel.ID, "Prize", "Alex", 1)
	require.NoError(t, err)
	disabled := true
	_, err = wheels.UpdateEntry(wheel.ID, entries[0].ID, EntryPatch{Disabled: &disabled})
	require.NoError(t, err)

	_, err = spins.Spin(wheel.ID)
	assert.ErrorAs(t, err, &validation)
}

func TestSpinUnknownWheel(t *testing.T) {
	spins := NewSpinService(newTestDB(t))

	_, err := spins.Spin(404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = spins.History(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSpinHistory(t *testing.T) {
	db := newTestDB(t)
	wheels := NewWheelService(db)
	spins := NewSpinService(db)

	wheel, err := wheels.CreateWheel("History", nil)
	require.NoError(t, err)
	_, err = wheels.AddEntries(wheel.ID, "Prize", "Alex", 1)
	require.NoError(t, err)

	first, err := spins.Spin(wheel.ID)
	require.NoError(t, err)
	second, err := spins.Spin(wheel.ID)
	require.NoError(t, err)

	results, err := spins.History(wheel.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].ID)
	assert.Equal(t, first.ID, results[1].ID)
}
