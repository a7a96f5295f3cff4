package insights

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
)

// SortKey orders search results.
type SortKey string

const (
	NewestFirst       SortKey = "newest"
	OldestFirst       SortKey = "oldest"
	HighestScoreFirst SortKey = "highest"
	LowestScoreFirst  SortKey = "lowest"
)

// SortKeys lists every sort key in display order.
var SortKeys = []SortKey{NewestFirst, OldestFirst, HighestScoreFirst, LowestScoreFirst}

// String returns the human readable name of the sort key.
func (k SortKey) String() string {
	switch k {
	case NewestFirst:
		return "Newest"
	case OldestFirst:
		return "Oldest"
	case HighestScoreFirst:
		return "Highest Score"
	case LowestScoreFirst:
		return "Lowest Score"
	}
	return string(k)
}

// Value returns the form value ParseSortKey accepts for the key.
func (k SortKey) Value() string {
	return string(k)
}

// ParseSortKey accepts a sort key value. The empty string means NewestFirst.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return NewestFirst, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortKeys, key) {
		return "", errors.Wrap(models.ErrValidation, "unknown sort key", slog.String("sort", s))
	}
	return key, nil
}

// Search filters the combined log by keyword and minimum score and sorts the result stably.
//
// The keyword matches case-insensitively against book, verse, figure, situation, tags and text. Entries without a
// score count as score 0, so they are excluded by any positive minimum.
func Search(p *models.Profile, keyword string, minScore int, sortKey SortKey) []models.Entry {
	keyword = strings.ToLower(keyword)
	var results []models.Entry
	for _, e := range p.Entries() {
		if !strings.Contains(strings.ToLower(e.SearchText()), keyword) {
			continue
		}
		if scoreOrZero(e) < minScore {
			continue
		}
		results = append(results, e)
	}
	slices.SortStableFunc(results, func(a, b models.Entry) int {
		switch sortKey {
		case OldestFirst:
			return a.SavedOn().Compare(b.SavedOn())
		case HighestScoreFirst:
			return cmp.Compare(scoreOrZero(b), scoreOrZero(a))
		case LowestScoreFirst:
			return cmp.Compare(scoreOrZero(a), scoreOrZero(b))
		case NewestFirst:
		}
		return b.SavedOn().Compare(a.SavedOn())
	})
	return results
}

func scoreOrZero(e models.Entry) int {
	score, _, _ := e.Scored()
	return score
}

const legacyRangeDays = 90

// DefaultLegacyTypes are the entry types preselected for a legacy export.
var DefaultLegacyTypes = []models.EntryType{
	models.EntryTypeScenario,
	models.EntryTypeAssessment,
	models.EntryTypeReflection,
}

// DefaultLegacyRange is the 90 days up to and including today.
func DefaultLegacyRange(today time.Time) (time.Time, time.Time) {
	end := models.Date(today)
	return end.AddDate(0, 0, -legacyRangeDays), end
}

// ExportLegacy selects the entries of the given types saved within [start, end], newest first.
func ExportLegacy(p *models.Profile, types []models.EntryType, start, end time.Time) []models.Entry {
	start, end = models.Date(start), models.Date(end)
	var results []models.Entry
	for _, e := range p.Entries() {
		if !slices.Contains(types, e.EntryType()) {
			continue
		}
		saved := models.Date(e.SavedOn())
		if saved.Before(start) || saved.After(end) {
			continue
		}
		results = append(results, e)
	}
	slices.SortStableFunc(results, func(a, b models.Entry) int {
		return b.SavedOn().Compare(a.SavedOn())
	})
	return results
}
