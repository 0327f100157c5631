package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlab/triday/pkg/models"
)

func TestSaveLoadReview(t *testing.T) {
	s := setupTestStore(t)
	date := models.NewDate(2025, 2, 12)
	year, week := date.ISOWeek()

	review, err := models.NewReview(date, models.Weekly, 4)
	require.NoError(t, err)
	review.Notes = "Solid week, health slipped."
	review.Decisions = append(review.Decisions, models.Decision{Summary: "block mornings for deep work"})

	path, err := s.SaveReview(year, week, review)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.DataRoot, "reviews", "2025-W07.json"), path)

	loaded, err := s.LoadReview(year, week)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 4, loaded.Score)
	assert.Equal(t, "Solid week, health slipped.", loaded.Notes)
	require.Len(t, loaded.Decisions, 1)
	assert.True(t, loaded.Date.Equal(date))
}

func TestSaveReviewInvalidScore(t *testing.T) {
	s := setupTestStore(t)
	review := &models.Review{Score: 9}

	_, err := s.SaveReview(2025, 7, review)
	assert.ErrorIs(t, err, models.ErrPrecondition)

	_, statErr := os.Stat(filepath.Join(s.DataRoot, "reviews", "2025-W07.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadReviewMissing(t *testing.T) {
	s := setupTestStore(t)
	loaded, err := s.LoadReview(2025, 33)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestReviewFileCarriesVersion(t *testing.T) {
	s := setupTestStore(t)
	review, err := models.NewReview(models.NewDate(2025, 2, 12), models.Weekly, 3)
	require.NoError(t, err)

	path, err := s.SaveReview(2025, 7, review)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)
}
