// Package journal is the profile store: an in-memory collection of named profiles and their append-only logs.
//
// A Store is owned by a single session and is not safe for concurrent use.
package journal

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
)

// ErrProfileNotFound is returned when an operation targets a profile that has not been created.
var ErrProfileNotFound = errors.NewSentinel("profile not found")

// Store owns all profiles of a session keyed by name.
//
// Renaming is not supported. Selecting a new name creates a second, empty profile and the history stays with the
// old name.
type Store struct {
	profiles map[string]*models.Profile
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{profiles: map[string]*models.Profile{}}
}

// GetOrCreate returns the profile with the given name, creating an empty one on first reference.
func (s *Store) GetOrCreate(name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Wrap(models.ErrValidation, "profile name is required")
	}
	if p, ok := s.profiles[name]; ok {
		return p, nil
	}
	p := models.NewProfile(name)
	s.profiles[name] = p
	return p, nil
}

// Profile returns an existing profile.
func (s *Store) Profile(name string) (*models.Profile, error) {
	p, ok := s.profiles[strings.TrimSpace(name)]
	if !ok {
		return nil, errors.Wrap(ErrProfileNotFound, "lookup profile", slog.String("profile", name))
	}
	return p, nil
}

// Names lists the profile names in alphabetical order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AppendScenario appends entry to the scenario log of the named profile.
func (s *Store) AppendScenario(name string, entry models.ScenarioEntry) error {
	p, err := s.Profile(name)
	if err != nil {
		return errors.Wrap(err, "append scenario")
	}
	p.Scenarios = append(p.Scenarios, entry)
	p.RecordScore(entry.Alignment.Score)
	return nil
}

// AppendAssessment appends entry to the assessment log of the named profile.
func (s *Store) AppendAssessment(name string, entry models.AssessmentEntry) error {
	p, err := s.Profile(name)
	if err != nil {
		return errors.Wrap(err, "append assessment")
	}
	p.Assessments = append(p.Assessments, entry)
	p.RecordScore(entry.Alignment.Score)
	return nil
}

// AppendReflection appends entry to the reflection log of the named profile.
func (s *Store) AppendReflection(name string, entry models.ReflectionEntry) error {
	p, err := s.Profile(name)
	if err != nil {
		return errors.Wrap(err, "append reflection")
	}
	p.Reflections = append(p.Reflections, entry)
	if score, _, ok := entry.Scored(); ok {
		p.RecordScore(score)
	}
	return nil
}

// UpdateGoal replaces the spiritual goal of the named profile.
func (s *Store) UpdateGoal(name, goal string) error {
	p, err := s.Profile(name)
	if err != nil {
		return errors.Wrap(err, "update goal")
	}
	p.Goal = strings.TrimSpace(goal)
	return nil
}
