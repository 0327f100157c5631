package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/halcyonlab/triday/pkg/models"
)

// reviewPath names review files by ISO week-year and 2-digit week
// number, e.g. reviews/2025-W07.json.
func (s *Store) reviewPath(year, week int) string {
	return filepath.Join(s.DataRoot, "reviews", fmt.Sprintf("%d-W%02d.json", year, week))
}

// SaveReview validates and atomically writes the review for an ISO
// week, returning the path written.
func (s *Store) SaveReview(year, week int, review *models.Review) (string, error) {
	if err := review.Validate(); err != nil {
		return "", err
	}
	path := s.reviewPath(year, week)
	data := models.ReviewData{Version: models.SchemaVersion, Review: *review}
	if err := s.saveJSON(path, &data); err != nil {
		return "", err
	}
	return path, nil
}

// LoadReview reads the review for an ISO week. Returns nil with no
// error when none was saved.
func (s *Store) LoadReview(year, week int) (*models.Review, error) {
	path := s.reviewPath(year, week)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var data models.ReviewData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialization, path, err)
	}
	return &data.Review, nil
}
