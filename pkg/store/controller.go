package store

import (
	"github.com/rs/zerolog"

	"github.com/halcyonlab/triday/pkg/models"
)

// Session holds one day's working state plus the shared artifacts, with
// a dirty flag per artifact. UI code mutates the state, sets flags, and
// calls Flush; nothing writes to disk outside a flush pass.
type Session struct {
	Date       models.Date
	Goals      *models.DailyGoals
	Meta       *models.DayMeta
	Vision     *models.FiveYearVision
	Templates  *models.ActionTemplates
	Objectives *models.ObjectivesData
	Indicators *models.IndicatorsData

	GoalsDirty      bool
	MetaDirty       bool
	VisionDirty     bool
	TemplatesDirty  bool
	ObjectivesDirty bool
	IndicatorsDirty bool

	// Warnings carried over from the last parse (capped sections etc.).
	Warnings []string

	Log zerolog.Logger
}

// NewSession loads everything needed for a day. Missing files yield
// empty defaults; nothing is created on disk until the first flush.
func NewSession(s *Store, date models.Date) (*Session, error) {
	goals, warnings, err := s.LoadOrCreateGoals(date)
	if err != nil {
		return nil, err
	}
	meta, err := s.LoadOrCreateDayMeta(date, goals)
	if err != nil {
		return nil, err
	}
	vision, err := s.LoadOrCreateVision()
	if err != nil {
		return nil, err
	}
	templates, err := s.LoadOrCreateTemplates()
	if err != nil {
		return nil, err
	}
	objectives, err := s.LoadOrCreateObjectives()
	if err != nil {
		return nil, err
	}
	indicators, err := s.LoadOrCreateIndicators()
	if err != nil {
		return nil, err
	}

	return &Session{
		Date:       date,
		Goals:      goals,
		Meta:       meta,
		Vision:     vision,
		Templates:  templates,
		Objectives: objectives,
		Indicators: indicators,
		Warnings:   warnings,
		Log:        zerolog.Nop(),
	}, nil
}

// Dirty reports whether any artifact needs saving.
func (sess *Session) Dirty() bool {
	return sess.GoalsDirty || sess.MetaDirty || sess.VisionDirty ||
		sess.TemplatesDirty || sess.ObjectivesDirty || sess.IndicatorsDirty
}

// Flush writes dirty artifacts in the fixed order Goals → DayMeta →
// Vision → Templates → Objectives → Indicators. After writing the
// goals it re-runs reconciliation and forces the metadata write in the
// same pass, so the sidecar never references action ids absent from
// the on-disk markdown.
func (sess *Session) Flush(s *Store) error {
	if sess.GoalsDirty {
		path, err := s.WriteGoalsFile(sess.Goals)
		if err != nil {
			return err
		}
		sess.GoalsDirty = false
		sess.Meta.Reconcile(sess.Goals)
		sess.MetaDirty = true
		sess.Log.Debug().Str("path", path).Msg("wrote goals")
	}
	if sess.MetaDirty {
		path, err := s.SaveDayMeta(sess.Date, sess.Meta)
		if err != nil {
			return err
		}
		sess.MetaDirty = false
		sess.Log.Debug().Str("path", path).Msg("wrote day meta")
	}
	if sess.VisionDirty {
		if _, err := s.SaveVision(sess.Vision); err != nil {
			return err
		}
		sess.VisionDirty = false
	}
	if sess.TemplatesDirty {
		if _, err := s.SaveTemplates(sess.Templates); err != nil {
			return err
		}
		sess.TemplatesDirty = false
	}
	if sess.ObjectivesDirty {
		if _, err := s.SaveObjectives(sess.Objectives); err != nil {
			return err
		}
		sess.ObjectivesDirty = false
	}
	if sess.IndicatorsDirty {
		if _, err := s.SaveIndicators(sess.Indicators); err != nil {
			return err
		}
		sess.IndicatorsDirty = false
	}
	return nil
}

// Reload re-reads the goals and metadata from disk, e.g. after an
// external edit. Unsaved goal edits are discarded by design; the other
// artifacts keep their in-memory state.
func (sess *Session) Reload(s *Store) error {
	goals, warnings, err := s.LoadOrCreateGoals(sess.Date)
	if err != nil {
		return err
	}
	meta, err := s.LoadOrCreateDayMeta(sess.Date, goals)
	if err != nil {
		return err
	}
	sess.Goals = goals
	sess.Meta = meta
	sess.Warnings = warnings
	sess.GoalsDirty = false
	sess.MetaDirty = false
	return nil
}
