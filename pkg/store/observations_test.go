package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlab/triday/pkg/models"
)

func TestObservationsRange(t *testing.T) {
	s := setupTestStore(t)
	ind := models.NewIndicator("steps", models.Leading, models.UnitCount)

	// Fourteen daily datapoints, 1000 to 1650.
	start := models.NewDate(2025, 8, 15)
	for i := 0; i < 14; i++ {
		obs := models.NewObservation(&ind, start.AddDays(i), float64(1000+50*i))
		require.NoError(t, s.AppendObservation(&obs))
	}

	got, err := s.ReadObservationsRange(models.NewDate(2025, 8, 19), models.NewDate(2025, 8, 25))
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, float64(1200), got[0].Value)
	assert.Equal(t, float64(1500), got[6].Value)
	assert.Equal(t, "2025-08-19", got[0].When.String())
	assert.Equal(t, ind.ID, got[0].IndicatorID)
	assert.Equal(t, models.SourceManual, got[0].Source)
}

func TestObservationsRangeBoundsInclusive(t *testing.T) {
	s := setupTestStore(t)
	ind := models.NewIndicator("pages", models.Lagging, models.UnitCount)
	day := models.NewDate(2025, 5, 5)

	obs := models.NewObservation(&ind, day, 42)
	require.NoError(t, s.AppendObservation(&obs))

	got, err := s.ReadObservationsRange(day, day)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestObservationsRangeReversed(t *testing.T) {
	s := setupTestStore(t)
	ind := models.NewIndicator("steps", models.Leading, models.UnitCount)
	obs := models.NewObservation(&ind, models.NewDate(2025, 5, 5), 1)
	require.NoError(t, s.AppendObservation(&obs))

	got, err := s.ReadObservationsRange(models.NewDate(2025, 5, 10), models.NewDate(2025, 5, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestObservationsMissingFile(t *testing.T) {
	s := setupTestStore(t)
	got, err := s.ReadObservationsRange(models.NewDate(2025, 1, 1), models.NewDate(2025, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestObservationsMalformedLine(t *testing.T) {
	s := setupTestStore(t)
	ind := models.NewIndicator("steps", models.Leading, models.UnitCount)
	obs := models.NewObservation(&ind, models.NewDate(2025, 5, 5), 1)
	require.NoError(t, s.AppendObservation(&obs))
	require.NoError(t, appendLine(s.observationsPath(), []byte("{broken")))

	_, err := s.ReadObservationsRange(models.NewDate(2025, 1, 1), models.NewDate(2025, 12, 31))
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestObservationUnitRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ind := models.NewIndicator("mood", models.Lagging, models.CustomUnit("smileys"))
	day := models.NewDate(2025, 6, 6)

	obs := models.NewObservation(&ind, day, 3)
	obs.Note = "after lunch"
	require.NoError(t, s.AppendObservation(&obs))

	got, err := s.ReadObservationsRange(day, day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "smileys", got[0].Unit.Label())
	assert.Equal(t, "after lunch", got[0].Note)
}

func TestObservationsAppendOnly(t *testing.T) {
	s := setupTestStore(t)
	ind := models.NewIndicator("steps", models.Leading, models.UnitCount)
	day := models.NewDate(2025, 7, 7)

	for i := 0; i < 3; i++ {
		obs := models.NewObservation(&ind, day, float64(i))
		require.NoError(t, s.AppendObservation(&obs))
	}

	data, err := os.ReadFile(s.observationsPath())
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 3, lines)
}
