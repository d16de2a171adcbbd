package srs

import (
	"math"
	"time"

	"github.com/monkesay/monke-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor for a passing review.
//
// The ease factor represents how quickly intervals grow for a word - higher
// values mean the word is easier and review gaps widen faster. The adjustment
// follows the SM-2 formula: perfect recall (quality 5) raises the ease by 0.1,
// while each step below 5 pulls it down progressively harder.
//
// Parameters:
//   - currentEF: The current ease factor, typically between 1.3 and 2.5
//   - quality: The review quality on the 0-5 scale (callers pass only 3-5)
//   - params: Configuration parameters for the SRS algorithm
//
// Returns:
//   - The new ease factor, never below params.MinEaseFactor
func calculateNewEaseFactor(
	currentEF float64,
	quality int,
	params *Params,
) float64 {
	shortfall := float64(5 - quality)
	newEF := currentEF + (0.1 - shortfall*(0.08+shortfall*0.02))

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next review interval in days.
//
// Failed reviews (quality below params.PassingQuality) reset the interval to
// params.FirstInterval regardless of its current value. Passing reviews step
// through the SM-2 ladder: an interval of 0 becomes the first interval, the
// first interval becomes the second, and anything longer is multiplied by the
// new ease factor and rounded to whole days.
//
// Parameters:
//   - currentInterval: The current interval in days
//   - quality: The review quality on the 0-5 scale
//   - easeFactor: The ease factor already updated for this review
//   - params: Configuration parameters for the SRS algorithm
func calculateNewInterval(
	currentInterval float64,
	quality int,
	easeFactor float64,
	params *Params,
) float64 {
	if quality < params.PassingQuality {
		return params.FirstInterval
	}

	switch currentInterval {
	case 0:
		return params.FirstInterval
	case params.FirstInterval:
		return params.SecondInterval
	default:
		return math.Round(currentInterval * easeFactor)
	}
}

// calculateFamiliarity derives the recall ratio from lifetime counters.
// The result is clamped to [0, 1].
func calculateFamiliarity(timesCorrect, timesReviewed int) float64 {
	denominator := timesReviewed
	if denominator < 1 {
		denominator = 1
	}

	familiarity := float64(timesCorrect) / float64(denominator)
	if familiarity > 1 {
		familiarity = 1
	}
	if familiarity < 0 {
		familiarity = 0
	}

	return familiarity
}

// determineStatus maps familiarity and interval onto a word status.
// Mastery additionally requires the interval to have matured, so a word
// cannot be MASTERED on early reviews no matter how accurate they were.
func determineStatus(familiarity, intervalDays float64, params *Params) domain.WordStatus {
	switch {
	case familiarity >= params.MasteredFamiliarity && intervalDays >= params.MasteredIntervalDays:
		return domain.WordStatusMastered
	case familiarity >= params.KnownFamiliarity:
		return domain.WordStatusKnown
	default:
		return domain.WordStatusLearning
	}
}

// calculateNextReviewDate converts the new interval into an absolute time.
func calculateNextReviewDate(intervalDays float64, now time.Time) time.Time {
	return now.Add(time.Duration(intervalDays * float64(24) * float64(time.Hour)))
}
