// Package alignment scores a decision from its Christlikeness, Heart and Faithfulness inputs.
//
// All rounding uses math.Round, i.e., halves round away from zero. On the non-negative values produced here this is
// the same as rounding half up, so (A+1)*5 = 9.5 becomes a Score of 10.
package alignment

import (
	"log/slog"
	"math"

	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/models"
)

// ErrOutOfRange is returned when an input lies outside [0, 1].
var ErrOutOfRange = errors.NewSentinel("input out of range")

const (
	minScore = 0
	maxScore = 10

	alignedThreshold = 7
	mixedThreshold   = 3
)

// Compute scores the inputs. Out-of-range inputs are rejected, never clamped.
func Compute(in models.Inputs) (models.Alignment, error) {
	for _, v := range []struct {
		name  string
		value float64
	}{{"C", in.C}, {"H", in.H}, {"F", in.F}} {
		if math.IsNaN(v.value) || v.value < 0 || v.value > 1 {
			return models.Alignment{}, errors.Wrap(ErrOutOfRange, "validate inputs",
				slog.String("input", v.name), slog.Float64("value", v.value))
		}
	}
	return FromG(G(in.C, in.H, in.F)), nil
}

// FromG derives A, Score and Label from a G value, e.g., an average over several entries.
func FromG(g float64) models.Alignment {
	a := AFromG(g)
	score := ScoreFromA(a)
	return models.Alignment{
		G:     g,
		A:     a,
		Score: score,
		Label: LabelFromScore(score),
	}
}

// G is the geometric mean of c, h and f rounded to 3 decimals.
func G(c, h, f float64) float64 {
	return round3(math.Cbrt(c * h * f))
}

// AFromG rescales g from [0, 1] to [-1, 1], rounded to 3 decimals.
func AFromG(g float64) float64 {
	return round3((g - 0.5) * 2) //nolint:mnd // definition of the spiritual vector
}

// ScoreFromA maps a to an integer score between 0 and 10.
func ScoreFromA(a float64) int {
	score := int(math.Round((a + 1) * 5)) //nolint:mnd // definition of the score
	return max(minScore, min(maxScore, score))
}

// LabelFromScore buckets a score.
func LabelFromScore(score int) models.Label {
	switch {
	case score >= alignedThreshold:
		return models.LabelAligned
	case score >= mixedThreshold:
		return models.LabelMixed
	default:
		return models.LabelNotAligned
	}
}

// Round rounds x to the given number of decimals.
func Round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals)) //nolint:mnd // decimal base
	return math.Round(x*pow) / pow
}

func round3(x float64) float64 {
	return Round(x, 3) //nolint:mnd // G and A are reported with 3 decimals
}
