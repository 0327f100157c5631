package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/halcyonlab/triday/pkg/models"
)

// AppendObservation appends one observation to the NDJSON log as a
// single line. The log is append-only; records are never rewritten.
func (s *Store) AppendObservation(obs *models.Observation) error {
	line, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("%w: observation: %v", ErrSerialization, err)
	}
	return appendLine(s.observationsPath(), line)
}

// ReadObservationsRange streams the log and returns observations whose
// date falls in the closed interval [start, end], in file order. A
// missing log or a reversed interval yields an empty result; a
// malformed line fails the whole read.
func (s *Store) ReadObservationsRange(start, end models.Date) ([]models.Observation, error) {
	if end.Before(start) {
		return nil, nil
	}

	f, err := os.Open(s.observationsPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening observations log: %w", err)
	}
	defer f.Close()

	var out []models.Observation
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var obs models.Observation
		if err := json.Unmarshal(line, &obs); err != nil {
			return nil, fmt.Errorf("%w: observations line %d: %v", ErrSerialization, lineNum, err)
		}
		if !obs.When.Before(start) && !obs.When.After(end) {
			out = append(out, obs)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading observations log: %w", err)
	}
	return out, nil
}
