package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/halcyonlab/triday/pkg/models"
)

// Store manages the filesystem-backed tracker data: markdown day files
// under GoalsDir, JSON/NDJSON sidecars under DataRoot.
type Store struct {
	GoalsDir string
	DataRoot string
}

// NewStore creates a Store for the given configuration, creating the
// directory structure if it doesn't exist.
func NewStore(cfg models.Config) (*Store, error) {
	for _, dir := range []string{
		cfg.GoalsDir,
		filepath.Join(cfg.DataRoot, "meta"),
		filepath.Join(cfg.DataRoot, "reviews"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return &Store{GoalsDir: cfg.GoalsDir, DataRoot: cfg.DataRoot}, nil
}

// GoalsPath returns the markdown file path for a date.
func (s *Store) GoalsPath(date models.Date) string {
	return filepath.Join(s.GoalsDir, date.String()+".md")
}

func (s *Store) metaPath(date models.Date) string {
	return filepath.Join(s.DataRoot, "meta", date.String()+".meta.json")
}

func (s *Store) objectivesPath() string   { return filepath.Join(s.DataRoot, "objectives.json") }
func (s *Store) indicatorsPath() string   { return filepath.Join(s.DataRoot, "indicators.json") }
func (s *Store) observationsPath() string { return filepath.Join(s.DataRoot, "observations.ndjson") }
func (s *Store) visionPath() string       { return filepath.Join(s.DataRoot, "vision.json") }
func (s *Store) templatesPath() string    { return filepath.Join(s.DataRoot, "templates.json") }

// ReadGoalsFile reads and parses a day file. A missing file is
// ErrNotFound.
func (s *Store) ReadGoalsFile(path string) (*models.DailyGoals, []string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	goals, warnings, err := ParseMarkdown(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return goals, warnings, nil
}

// WriteGoalsFile atomically writes the day's markdown and returns the
// path written.
func (s *Store) WriteGoalsFile(g *models.DailyGoals) (string, error) {
	path := s.GoalsPath(g.Date)
	if err := atomicWrite(path, []byte(GenerateMarkdown(g))); err != nil {
		return "", err
	}
	return path, nil
}

// LoadOrCreateGoals returns the stored goals for a date, or a fresh
// empty day when no file exists. It never creates the file.
func (s *Store) LoadOrCreateGoals(date models.Date) (*models.DailyGoals, []string, error) {
	goals, warnings, err := s.ReadGoalsFile(s.GoalsPath(date))
	if errors.Is(err, ErrNotFound) {
		return models.NewDailyGoals(date), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return goals, warnings, nil
}

// GetYesterdayGoals reads the day file for the calendar day before
// today. Returns nil with no error when the file is missing.
func (s *Store) GetYesterdayGoals(today models.Date) (*models.DailyGoals, error) {
	goals, _, err := s.ReadGoalsFile(s.GoalsPath(today.AddDays(-1)))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// LoadOrCreateDayMeta loads the metadata sidecar for a date and
// reconciles it against the goals; when the sidecar is missing it
// builds fresh metadata from the goals without creating the file.
func (s *Store) LoadOrCreateDayMeta(date models.Date, goals *models.DailyGoals) (*models.DayMeta, error) {
	path := s.metaPath(date)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.DayMetaFromGoals(goals), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta models.DayMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialization, path, err)
	}
	meta.Reconcile(goals)
	return &meta, nil
}

// SaveDayMeta atomically writes the metadata sidecar for a date.
func (s *Store) SaveDayMeta(date models.Date, meta *models.DayMeta) (string, error) {
	path := s.metaPath(date)
	if err := s.saveJSON(path, meta); err != nil {
		return "", err
	}
	return path, nil
}

// LoadOrCreateObjectives returns the stored objectives, or an empty
// versioned envelope when the file is missing.
func (s *Store) LoadOrCreateObjectives() (*models.ObjectivesData, error) {
	data := models.NewObjectivesData()
	if err := s.loadJSON(s.objectivesPath(), data); err != nil {
		return nil, err
	}
	return data, nil
}

// SaveObjectives atomically writes objectives.json.
func (s *Store) SaveObjectives(data *models.ObjectivesData) (string, error) {
	path := s.objectivesPath()
	if err := s.saveJSON(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// LoadOrCreateIndicators returns the stored indicator definitions, or
// an empty versioned envelope when the file is missing.
func (s *Store) LoadOrCreateIndicators() (*models.IndicatorsData, error) {
	data := models.NewIndicatorsData()
	if err := s.loadJSON(s.indicatorsPath(), data); err != nil {
		return nil, err
	}
	return data, nil
}

// SaveIndicators atomically writes indicators.json.
func (s *Store) SaveIndicators(data *models.IndicatorsData) (string, error) {
	path := s.indicatorsPath()
	if err := s.saveJSON(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// LoadOrCreateVision returns the stored five-year vision, or an empty
// one when the file is missing.
func (s *Store) LoadOrCreateVision() (*models.FiveYearVision, error) {
	vision := models.NewFiveYearVision()
	if err := s.loadJSON(s.visionPath(), vision); err != nil {
		return nil, err
	}
	return vision, nil
}

// SaveVision atomically writes vision.json.
func (s *Store) SaveVision(v *models.FiveYearVision) (string, error) {
	path := s.visionPath()
	if err := s.saveJSON(path, v); err != nil {
		return "", err
	}
	return path, nil
}

// LoadOrCreateTemplates returns the stored action templates, or an
// empty set when the file is missing.
func (s *Store) LoadOrCreateTemplates() (*models.ActionTemplates, error) {
	templates := models.NewActionTemplates()
	if err := s.loadJSON(s.templatesPath(), templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// SaveTemplates atomically writes templates.json.
func (s *Store) SaveTemplates(t *models.ActionTemplates) (string, error) {
	path := s.templatesPath()
	if err := s.saveJSON(path, t); err != nil {
		return "", err
	}
	return path, nil
}

// CalculateStreak counts consecutive days ending today with at least
// one completed non-empty action. A missing file, a parse failure, or
// the 365-day cap ends the walk.
func (s *Store) CalculateStreak(today models.Date) int {
	streak := 0
	date := today
	for streak <= 365 {
		goals, _, err := s.ReadGoalsFile(s.GoalsPath(date))
		if err != nil {
			break
		}
		hasCompletion := false
		for _, o := range goals.Outcomes() {
			for i := range o.Actions {
				if o.Actions[i].Completed && !o.Actions[i].IsEmpty() {
					hasCompletion = true
				}
			}
		}
		if !hasCompletion {
			break
		}
		streak++
		date = date.AddDays(-1)
	}
	return streak
}

// loadJSON decodes path into v, leaving v untouched when the file does
// not exist.
func (s *Store) loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, path, err)
	}
	return nil
}

func (s *Store) saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, path, err)
	}
	return atomicWrite(path, append(data, '\n'))
}
