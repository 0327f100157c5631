package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ReviewPeriod is the cadence a review covers.
type ReviewPeriod string

const (
	Weekly    ReviewPeriod = "Weekly"
	Monthly   ReviewPeriod = "Monthly"
	Quarterly ReviewPeriod = "Quarterly"
)

// Decision is one outcome of a review, optionally tied to an objective
// or indicator.
type Decision struct {
	Summary     string `json:"summary"`
	ObjectiveID string `json:"objective_id,omitempty"`
	IndicatorID string `json:"indicator_id,omitempty"`
	Rationale   string `json:"rationale,omitempty"`
}

// Review is a periodic retrospective with a 1-5 score and decisions.
type Review struct {
	ID        string       `json:"id"`
	Date      Date         `json:"date"`
	Period    ReviewPeriod `json:"period"`
	Notes     string       `json:"notes,omitempty"`
	Score     int          `json:"score_1_to_5"`
	Decisions []Decision   `json:"decisions"`
}

// NewReview creates a review for the given date.
func NewReview(date Date, period ReviewPeriod, score int) (*Review, error) {
	r := &Review{
		ID:     uuid.NewString(),
		Date:   date,
		Period: period,
		Score:  score,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the score range.
func (r *Review) Validate() error {
	if r.Score < 1 || r.Score > 5 {
		return fmt.Errorf("%w: review score %d not in 1..5", ErrPrecondition, r.Score)
	}
	return nil
}

// ReviewData is the versioned envelope for a review file.
type ReviewData struct {
	Version int    `json:"version"`
	Review  Review `json:"review"`
}
