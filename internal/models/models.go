// Package models holds the journal data model shared by the scoring, storage and query packages.
package models

import (
	"time"

	"github.com/myrjola/soverain/internal/errors"
)

// ErrValidation is returned when a required text field is empty.
var ErrValidation = errors.NewSentinel("validation failed")

// Placeholder is displayed for values that are not known yet, e.g., the goal of a new profile.
const Placeholder = "—"

// Inputs are the three self-reported dimensions of a decision. Each lies in [0, 1].
type Inputs struct {
	// C is Christlikeness.
	C float64
	// H is Heart.
	H float64
	// F is Faithfulness.
	F float64
}

// Label is the categorical bucket of a Score.
type Label string

const (
	LabelAligned    Label = "Aligned"
	LabelMixed      Label = "Mixed"
	LabelNotAligned Label = "Not Aligned"
)

// Alignment is the outcome of scoring Inputs. It is immutable once computed.
type Alignment struct {
	// G is the God-Alignment magnitude, the geometric mean of the inputs.
	G float64
	// A is the spiritual vector, G rescaled to [-1, 1].
	A float64
	// Score is an integer 0–10 derived from A.
	Score int
	Label Label
}

// Date truncates t to date granularity in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout formats saved dates.
const DateLayout = time.DateOnly
