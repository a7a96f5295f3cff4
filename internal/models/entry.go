package models

import (
	"strings"
	"time"
)

// EntryType names the kind of an entry in aggregated views.
type EntryType string

const (
	EntryTypeScenario          EntryType = "Scenario"
	EntryTypeAssessment        EntryType = "Assessment"
	EntryTypeReflection        EntryType = "Reflection"
	EntryTypePathwayReflection EntryType = "Pathway Reflection"
)

// Assessment tags used by the original forms.
const (
	AssessmentLife             = "Life Assessment"
	AssessmentGreatestCommands = "Greatest Commands"
)

// ReflectionLink selects which entry a reflection snapshots its score from.
type ReflectionLink string

const (
	LinkNone           ReflectionLink = "None"
	LinkLastScenario   ReflectionLink = "Last Scenario"
	LinkLastAssessment ReflectionLink = "Last Assessment"
)

// Entry is one of *ScenarioEntry, *AssessmentEntry or *ReflectionEntry.
//
// The interface is closed; code that needs kind specific fields type switches over the three implementations.
type Entry interface {
	EntryID() string
	SavedOn() time.Time
	EntryType() EntryType
	// Scored reports the score and G of the entry. ok is false for reflections without a score.
	Scored() (score int, g float64, ok bool)
	// SearchText concatenates Book, Verse, Figure, Situation, Tags and Text, absent fields being empty.
	SearchText() string

	entry()
}

// ScenarioEntry is a scored scriptural or personal scenario.
type ScenarioEntry struct {
	ID        string
	Book      string
	Verse     string
	Figure    string
	Situation string
	Ref       string
	Inputs    Inputs
	Alignment Alignment
	Saved     time.Time
}

// AssessmentEntry is a scored self-assessment such as a life assessment.
type AssessmentEntry struct {
	ID string
	// Type is a free-form tag, e.g., AssessmentLife.
	Type      string
	Inputs    Inputs
	Alignment Alignment
	Saved     time.Time
}

// ReflectionEntry is free text, optionally carrying a score snapshot.
//
// Journal reflections may link to the last scenario or assessment; Score and G are then copied by value at link
// time. Pathway reflections are scored directly and carry the pathway step they reflect on.
type ReflectionEntry struct {
	ID       string
	Type     EntryType
	Text     string
	Tags     string
	LinkedTo ReflectionLink
	Score    *int
	G        *float64
	Label    Label

	Pathway   string
	Book      string
	Verse     string
	Figure    string
	Situation string
	Inputs    *Inputs

	Saved time.Time
}

func (e *ScenarioEntry) entry()   {}
func (e *AssessmentEntry) entry() {}
func (e *ReflectionEntry) entry() {}

func (e *ScenarioEntry) EntryID() string   { return e.ID }
func (e *AssessmentEntry) EntryID() string { return e.ID }
func (e *ReflectionEntry) EntryID() string { return e.ID }

func (e *ScenarioEntry) SavedOn() time.Time   { return e.Saved }
func (e *AssessmentEntry) SavedOn() time.Time { return e.Saved }
func (e *ReflectionEntry) SavedOn() time.Time { return e.Saved }

func (e *ScenarioEntry) EntryType() EntryType   { return EntryTypeScenario }
func (e *AssessmentEntry) EntryType() EntryType { return EntryTypeAssessment }

func (e *ReflectionEntry) EntryType() EntryType {
	if e.Type == "" {
		return EntryTypeReflection
	}
	return e.Type
}

func (e *ScenarioEntry) Scored() (int, float64, bool) {
	return e.Alignment.Score, e.Alignment.G, true
}

func (e *AssessmentEntry) Scored() (int, float64, bool) {
	return e.Alignment.Score, e.Alignment.G, true
}

func (e *ReflectionEntry) Scored() (int, float64, bool) {
	if e.Score == nil || e.G == nil {
		return 0, 0, false
	}
	return *e.Score, *e.G, true
}

func (e *ScenarioEntry) SearchText() string {
	return joinSearch(e.Book, e.Verse, e.Figure, e.Situation, "", "")
}

func (e *AssessmentEntry) SearchText() string {
	return joinSearch("", "", "", "", "", "")
}

func (e *ReflectionEntry) SearchText() string {
	return joinSearch(e.Book, e.Verse, e.Figure, e.Situation, e.Tags, e.Text)
}

func joinSearch(fields ...string) string {
	return strings.Join(fields, " ")
}
