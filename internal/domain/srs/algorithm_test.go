package srs

import (
	"math"
	"testing"

	"github.com/monkesay/monke-api/internal/domain"
)

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		ef       float64
		quality  int
		expected float64
	}{
		{
			name:     "Perfect recall raises ease by 0.1",
			ef:       2.5,
			quality:  5,
			expected: 2.6,
		},
		{
			name:     "Quality 4 lowers ease slightly",
			ef:       2.5,
			quality:  4,
			expected: 2.5, // 2.5 + (0.1 - 1*(0.08 + 1*0.02)) = 2.5
		},
		{
			name:     "Quality 3 lowers ease noticeably",
			ef:       2.5,
			quality:  3,
			expected: 2.36, // 2.5 + (0.1 - 2*(0.08 + 2*0.02)) = 2.36
		},
		{
			name:     "Ease never drops below the floor",
			ef:       1.3,
			quality:  3,
			expected: 1.3,
		},
		{
			name:     "Ease just above the floor clamps to it",
			ef:       1.35,
			quality:  3,
			expected: 1.3,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := calculateNewEaseFactor(tc.ef, tc.quality, params)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("expected ease factor %f, got %f", tc.expected, result)
			}
		})
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		quality  int
		ef       float64
		expected float64
	}{
		{
			name:     "Failed review resets interval to one day",
			current:  30,
			quality:  2,
			ef:       2.5,
			expected: 1,
		},
		{
			name:     "Quality zero also resets",
			current:  6,
			quality:  0,
			ef:       2.5,
			expected: 1,
		},
		{
			name:     "Zero interval steps to the first interval",
			current:  0,
			quality:  4,
			ef:       2.5,
			expected: 1,
		},
		{
			name:     "First interval steps to the second interval",
			current:  1,
			quality:  4,
			ef:       2.5,
			expected: 6,
		},
		{
			name:     "Mature interval multiplies by ease and rounds",
			current:  6,
			quality:  4,
			ef:       2.5,
			expected: 15, // round(6 * 2.5)
		},
		{
			name:     "Rounding goes to the nearest whole day",
			current:  10,
			quality:  3,
			ef:       2.36,
			expected: 24, // round(23.6)
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := calculateNewInterval(tc.current, tc.quality, tc.ef, params)
			if result != tc.expected {
				t.Errorf("expected interval %f, got %f", tc.expected, result)
			}
		})
	}
}

func TestCalculateFamiliarity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		correct  int
		reviewed int
		expected float64
	}{
		{name: "No reviews yields zero", correct: 0, reviewed: 0, expected: 0},
		{name: "All correct yields one", correct: 5, reviewed: 5, expected: 1},
		{name: "Partial accuracy", correct: 3, reviewed: 4, expected: 0.75},
		{name: "Denominator floors at one", correct: 2, reviewed: 0, expected: 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := calculateFamiliarity(tc.correct, tc.reviewed)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("expected familiarity %f, got %f", tc.expected, result)
			}
		})
	}
}

func TestDetermineStatus(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name        string
		familiarity float64
		interval    float64
		expected    domain.WordStatus
	}{
		{
			name:        "High familiarity with mature interval is mastered",
			familiarity: 0.95,
			interval:    30,
			expected:    domain.WordStatusMastered,
		},
		{
			name:        "High familiarity with young interval stays known",
			familiarity: 0.95,
			interval:    6,
			expected:    domain.WordStatusKnown,
		},
		{
			name:        "Exactly at the mastery boundary",
			familiarity: 0.9,
			interval:    21,
			expected:    domain.WordStatusMastered,
		},
		{
			name:        "Known threshold",
			familiarity: 0.7,
			interval:    1,
			expected:    domain.WordStatusKnown,
		},
		{
			name:        "Below known threshold is learning",
			familiarity: 0.69,
			interval:    30,
			expected:    domain.WordStatusLearning,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := determineStatus(tc.familiarity, tc.interval, params)
			if result != tc.expected {
				t.Errorf("expected status %s, got %s", tc.expected, result)
			}
		})
	}
}
