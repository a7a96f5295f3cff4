package insights

import (
	"fmt"
	"slices"
	"time"

	"github.com/myrjola/soverain/internal/models"
)

const (
	recentWindow         = 5
	strongNudgeDays      = 5
	gentleNudgeDays      = 2
	mixedSeasonThreshold = 6.0
	affirmationThreshold = 8.0
)

// Staleness measures how long ago the profile was last active and how it has scored lately.
type Staleness struct {
	// DaysSinceLastEntry is nil when the profile has no entries at all.
	DaysSinceLastEntry *int
	// RecentAverageScore averages the last five scenarios and assessments by save date, rounded to 2 decimals.
	RecentAverageScore *float64
}

// MeasureStaleness computes the staleness of p as of today.
func MeasureStaleness(p *models.Profile, today time.Time) Staleness {
	var st Staleness
	entries := p.Entries()
	if len(entries) > 0 {
		last := entries[0].SavedOn()
		for _, e := range entries[1:] {
			if e.SavedOn().After(last) {
				last = e.SavedOn()
			}
		}
		days := int(models.Date(today).Sub(models.Date(last)).Hours() / 24) //nolint:mnd // hours per day
		st.DaysSinceLastEntry = &days
	}

	type scored struct {
		saved time.Time
		score int
	}
	recent := make([]scored, 0, len(p.Scenarios)+len(p.Assessments))
	for _, s := range p.Scenarios {
		recent = append(recent, scored{saved: s.Saved, score: s.Alignment.Score})
	}
	for _, a := range p.Assessments {
		recent = append(recent, scored{saved: a.Saved, score: a.Alignment.Score})
	}
	slices.SortStableFunc(recent, func(a, b scored) int {
		return a.saved.Compare(b.saved)
	})
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	scores := make([]float64, 0, len(recent))
	for _, r := range recent {
		scores = append(scores, float64(r.score))
	}
	st.RecentAverageScore = mean(scores, 2) //nolint:mnd // decimals
	return st
}

// NudgeKind classifies a nudge for styling.
type NudgeKind string

const (
	NudgeStrong      NudgeKind = "strong"
	NudgeGentle      NudgeKind = "gentle"
	NudgeMixedSeason NudgeKind = "mixed-season"
	NudgeAffirmation NudgeKind = "affirmation"
)

// Nudge is an encouragement shown on the dashboard.
type Nudge struct {
	Kind    NudgeKind
	Message string
}

// Nudges turns staleness into at most one activity nudge followed by at most one score nudge.
func Nudges(st Staleness) []Nudge {
	var nudges []Nudge
	if st.DaysSinceLastEntry != nil {
		switch days := *st.DaysSinceLastEntry; {
		case days >= strongNudgeDays:
			nudges = append(nudges, Nudge{
				Kind:    NudgeStrong,
				Message: fmt.Sprintf("%d days since your last reflection. Revisit a Scripture or journal a moment of clarity.", days),
			})
		case days >= gentleNudgeDays:
			nudges = append(nudges, Nudge{
				Kind:    NudgeGentle,
				Message: fmt.Sprintf("%d days since your last entry. A quiet moment could bring fresh insight.", days),
			})
		}
	}
	if st.RecentAverageScore != nil {
		switch avg := *st.RecentAverageScore; {
		case avg < mixedSeasonThreshold:
			nudges = append(nudges, Nudge{
				Kind:    NudgeMixedSeason,
				Message: fmt.Sprintf("Your recent average score is %.2f. This may be a mixed season; "+
					"the Obedience or Love pathway is a good place to return to.", avg),
			})
		case avg >= affirmationThreshold:
			nudges = append(nudges, Nudge{
				Kind:    NudgeAffirmation,
				Message: fmt.Sprintf("Your recent average score is %.2f. You are walking in strong alignment; "+
					"consider journaling what sustains you.", avg),
			})
		}
	}
	return nudges
}
