package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/soverain/internal/alignment"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
)

// ScenarioDraft is a scenario before it has been scored.
type ScenarioDraft struct {
	Book      string
	Verse     string
	Figure    string
	Situation string
	// Ref defaults to "Book Verse".
	Ref    string
	Inputs models.Inputs
}

func newID() string {
	return uuid.NewString()
}

// RecordScenario scores draft and appends it to the named profile. Book and Verse are required.
func (s *Store) RecordScenario(name string, draft ScenarioDraft, today time.Time) (models.ScenarioEntry, error) {
	var (
		book  = strings.TrimSpace(draft.Book)
		verse = strings.TrimSpace(draft.Verse)
		err   error
	)
	if book == "" || verse == "" {
		return models.ScenarioEntry{}, errors.Wrap(models.ErrValidation, "book and verse are required")
	}
	if _, err = s.Profile(name); err != nil {
		return models.ScenarioEntry{}, errors.Wrap(err, "record scenario")
	}
	var a models.Alignment
	if a, err = alignment.Compute(draft.Inputs); err != nil {
		return models.ScenarioEntry{}, errors.Wrap(err, "score scenario")
	}
	ref := strings.TrimSpace(draft.Ref)
	if ref == "" {
		ref = book + " " + verse
	}
	entry := models.ScenarioEntry{
		ID:        newID(),
		Book:      book,
		Verse:     verse,
		Figure:    strings.TrimSpace(draft.Figure),
		Situation: strings.TrimSpace(draft.Situation),
		Ref:       ref,
		Inputs:    draft.Inputs,
		Alignment: a,
		Saved:     models.Date(today),
	}
	if err = s.AppendScenario(name, entry); err != nil {
		return models.ScenarioEntry{}, err
	}
	return entry, nil
}

// RecordAssessment scores in and appends it as an assessment tagged typeTag.
func (s *Store) RecordAssessment(
	name string,
	typeTag string,
	in models.Inputs,
	today time.Time,
) (models.AssessmentEntry, error) {
	var err error
	if _, err = s.Profile(name); err != nil {
		return models.AssessmentEntry{}, errors.Wrap(err, "record assessment")
	}
	var a models.Alignment
	if a, err = alignment.Compute(in); err != nil {
		return models.AssessmentEntry{}, errors.Wrap(err, "score assessment")
	}
	entry := models.AssessmentEntry{
		ID:        newID(),
		Type:      strings.TrimSpace(typeTag),
		Inputs:    in,
		Alignment: a,
		Saved:     models.Date(today),
	}
	if err = s.AppendAssessment(name, entry); err != nil {
		return models.AssessmentEntry{}, err
	}
	return entry, nil
}

// RecordGreatestCommands scores love of God and love of neighbor with faithfulness fixed at 1 and stores the result
// as an assessment.
func (s *Store) RecordGreatestCommands(
	name string,
	loveGod, loveNeighbor float64,
	today time.Time,
) (models.AssessmentEntry, error) {
	return s.RecordAssessment(name, models.AssessmentGreatestCommands,
		models.Inputs{C: loveGod, H: loveNeighbor, F: 1}, today)
}

// RecordReflection appends a journal reflection. When link selects the last scenario or assessment, its Score and G
// are copied into the reflection. Linking to an empty log leaves the reflection unscored.
func (s *Store) RecordReflection(
	name string,
	text string,
	tags string,
	link models.ReflectionLink,
	today time.Time,
) (models.ReflectionEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ReflectionEntry{}, errors.Wrap(models.ErrValidation, "reflection text is required")
	}
	p, err := s.Profile(name)
	if err != nil {
		return models.ReflectionEntry{}, errors.Wrap(err, "record reflection")
	}
	if link == "" {
		link = models.LinkNone
	}
	entry := models.ReflectionEntry{
		ID:       newID(),
		Type:     models.EntryTypeReflection,
		Text:     text,
		Tags:     strings.TrimSpace(tags),
		LinkedTo: link,
		Saved:    models.Date(today),
	}
	var (
		linked models.Alignment
		ok     bool
	)
	switch link {
	case models.LinkLastScenario:
		var last models.ScenarioEntry
		if last, ok = p.LastScenario(); ok {
			linked = last.Alignment
		}
	case models.LinkLastAssessment:
		var last models.AssessmentEntry
		if last, ok = p.LastAssessment(); ok {
			linked = last.Alignment
		}
	case models.LinkNone:
	}
	if ok {
		score, g := linked.Score, linked.G
		entry.Score = &score
		entry.G = &g
		entry.Label = linked.Label
	}
	if err = s.AppendReflection(name, entry); err != nil {
		return models.ReflectionEntry{}, err
	}
	return entry, nil
}

// RecordPathwayReflection scores a pathway step and appends it to the reflection log.
func (s *Store) RecordPathwayReflection(
	name string,
	pathway string,
	step models.PathwayStep,
	in models.Inputs,
	today time.Time,
) (models.ReflectionEntry, error) {
	var err error
	if _, err = s.Profile(name); err != nil {
		return models.ReflectionEntry{}, errors.Wrap(err, "record pathway reflection")
	}
	var a models.Alignment
	if a, err = alignment.Compute(in); err != nil {
		return models.ReflectionEntry{}, errors.Wrap(err, "score pathway step")
	}
	score, g, inputs := a.Score, a.G, in
	entry := models.ReflectionEntry{
		ID:        newID(),
		Type:      models.EntryTypePathwayReflection,
		LinkedTo:  models.LinkNone,
		Score:     &score,
		G:         &g,
		Label:     a.Label,
		Pathway:   pathway,
		Book:      step.Book,
		Verse:     step.Verse,
		Figure:    step.Figure,
		Situation: step.Situation,
		Inputs:    &inputs,
		Saved:     models.Date(today),
	}
	if err = s.AppendReflection(name, entry); err != nil {
		return models.ReflectionEntry{}, err
	}
	return entry, nil
}
