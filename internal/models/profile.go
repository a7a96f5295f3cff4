package models

import (
	"strconv"
)

// Profile is a named container of a user's logged entries and goal.
//
// The logs are append-only. Entries are owned by the profile and never shared between profiles.
type Profile struct {
	Name string
	Goal string
	// LastScore is the display value of the most recent scored entry.
	LastScore   string
	Scenarios   []ScenarioEntry
	Assessments []AssessmentEntry
	Reflections []ReflectionEntry
}

// NewProfile creates an empty profile with placeholder goal and score.
func NewProfile(name string) *Profile {
	return &Profile{
		Name:        name,
		Goal:        Placeholder,
		LastScore:   Placeholder,
		Scenarios:   []ScenarioEntry{},
		Assessments: []AssessmentEntry{},
		Reflections: []ReflectionEntry{},
	}
}

// Entries returns all entries in combined log order: scenarios, then assessments, then reflections.
func (p *Profile) Entries() []Entry {
	entries := make([]Entry, 0, len(p.Scenarios)+len(p.Assessments)+len(p.Reflections))
	for i := range p.Scenarios {
		entries = append(entries, &p.Scenarios[i])
	}
	for i := range p.Assessments {
		entries = append(entries, &p.Assessments[i])
	}
	for i := range p.Reflections {
		entries = append(entries, &p.Reflections[i])
	}
	return entries
}

// LastScenario returns the most recently appended scenario.
func (p *Profile) LastScenario() (ScenarioEntry, bool) {
	if len(p.Scenarios) == 0 {
		return ScenarioEntry{}, false
	}
	return p.Scenarios[len(p.Scenarios)-1], true
}

// LastAssessment returns the most recently appended assessment.
func (p *Profile) LastAssessment() (AssessmentEntry, bool) {
	if len(p.Assessments) == 0 {
		return AssessmentEntry{}, false
	}
	return p.Assessments[len(p.Assessments)-1], true
}

// RecordScore refreshes the cached last score display value.
func (p *Profile) RecordScore(score int) {
	p.LastScore = strconv.Itoa(score)
}
