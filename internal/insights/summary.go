// Package insights derives summaries, time series, nudges and filtered views from a profile's logs.
//
// Every function is read-only with respect to the profile. Averages over an empty set are reported as nil, never
// as zero.
package insights

import (
	"cmp"
	"slices"
	"time"

	"github.com/myrjola/soverain/internal/alignment"
	"github.com/myrjola/soverain/internal/models"
)

// Summary is the dashboard view of a profile.
type Summary struct {
	Scenarios   int
	Assessments int
	Reflections int
	// AverageScore is rounded to 2 decimals, nil when there are no scenarios or assessments.
	AverageScore *float64
	// AverageG is rounded to 3 decimals.
	AverageG *float64
	// AverageA is the mean of each entry's A derived from its G, rounded to 3 decimals.
	AverageA *float64
}

// Summarize counts the logs and averages scenarios and assessments. Reflections are not averaged.
func Summarize(p *models.Profile) Summary {
	summary := Summary{
		Scenarios:   len(p.Scenarios),
		Assessments: len(p.Assessments),
		Reflections: len(p.Reflections),
	}
	var scores, gs, as []float64
	for _, a := range scoredAlignments(p) {
		scores = append(scores, float64(a.Score))
		gs = append(gs, a.G)
		as = append(as, alignment.AFromG(a.G))
	}
	summary.AverageScore = mean(scores, 2) //nolint:mnd // decimals
	summary.AverageG = mean(gs, 3)         //nolint:mnd // decimals
	summary.AverageA = mean(as, 3)         //nolint:mnd // decimals
	return summary
}

// ProfileAlignment previews the average G as a full alignment. ok is false when nothing has been scored.
func (s Summary) ProfileAlignment() (models.Alignment, bool) {
	if s.AverageG == nil {
		return models.Alignment{}, false
	}
	return alignment.FromG(*s.AverageG), true
}

func scoredAlignments(p *models.Profile) []models.Alignment {
	alignments := make([]models.Alignment, 0, len(p.Scenarios)+len(p.Assessments))
	for _, s := range p.Scenarios {
		alignments = append(alignments, s.Alignment)
	}
	for _, a := range p.Assessments {
		alignments = append(alignments, a.Alignment)
	}
	return alignments
}

func mean(values []float64, decimals int) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := alignment.Round(sum/float64(len(values)), decimals)
	return &m
}

// Point is one scored entry on the time series.
type Point struct {
	Date  time.Time
	Type  models.EntryType
	Score int
	G     float64
	Label models.Label
}

// TimeSeries lists scored entries ascending by date. Entries saved on the same date keep combined log order.
func TimeSeries(p *models.Profile) []Point {
	var points []Point
	for _, e := range p.Entries() {
		score, g, ok := e.Scored()
		if !ok {
			continue
		}
		points = append(points, Point{
			Date:  e.SavedOn(),
			Type:  e.EntryType(),
			Score: score,
			G:     g,
			Label: label(e, score),
		})
	}
	slices.SortStableFunc(points, func(a, b Point) int {
		return a.Date.Compare(b.Date)
	})
	return points
}

func label(e models.Entry, score int) models.Label {
	switch e := e.(type) {
	case *models.ScenarioEntry:
		return e.Alignment.Label
	case *models.AssessmentEntry:
		return e.Alignment.Label
	case *models.ReflectionEntry:
		if e.Label != "" {
			return e.Label
		}
	}
	return alignment.LabelFromScore(score)
}

// TypeAverage is the mean score of one entry type.
type TypeAverage struct {
	Type models.EntryType
	// Average is rounded to 2 decimals.
	Average float64
	Count   int
}

// AverageByType averages the scored entries per type, one row per type present, ordered by type name.
func AverageByType(p *models.Profile) []TypeAverage {
	sums := map[models.EntryType]float64{}
	counts := map[models.EntryType]int{}
	for _, point := range TimeSeries(p) {
		sums[point.Type] += float64(point.Score)
		counts[point.Type]++
	}
	averages := make([]TypeAverage, 0, len(counts))
	for t, count := range counts {
		averages = append(averages, TypeAverage{
			Type:    t,
			Average: alignment.Round(sums[t]/float64(count), 2), //nolint:mnd // decimals
			Count:   count,
		})
	}
	slices.SortFunc(averages, func(a, b TypeAverage) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return averages
}

// Scoreboard combines the time series with per-type averages and the average alignment over all scored entries.
type Scoreboard struct {
	Series  []Point
	ByType  []TypeAverage
	Average models.Alignment
	// Empty is true when nothing has been scored; Average is then meaningless.
	Empty bool
}

// BuildScoreboard derives the scoreboard of a profile.
func BuildScoreboard(p *models.Profile) Scoreboard {
	series := TimeSeries(p)
	board := Scoreboard{
		Series: series,
		ByType: AverageByType(p),
		Empty:  len(series) == 0,
	}
	gs := make([]float64, 0, len(series))
	for _, point := range series {
		gs = append(gs, point.G)
	}
	if g := mean(gs, 3); g != nil { //nolint:mnd // decimals
		board.Average = alignment.FromG(*g)
	}
	return board
}
