package domain

import "testing"

func TestStoryLevelForKnownWords(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		known    int
		expected CEFRLevel
	}{
		{name: "Zero words is A1", known: 0, expected: LevelA1},
		{name: "Just below A2 boundary", known: 49, expected: LevelA1},
		{name: "At A2 boundary", known: 50, expected: LevelA2},
		{name: "Just below B1 boundary", known: 149, expected: LevelA2},
		{name: "At B1 boundary", known: 150, expected: LevelB1},
		{name: "Just below B2 boundary", known: 399, expected: LevelB1},
		{name: "At B2 boundary", known: 400, expected: LevelB2},
		{name: "Far past B2 boundary", known: 2000, expected: LevelB2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := StoryLevelForKnownWords(tc.known); got != tc.expected {
				t.Errorf("expected %s for %d known words, got %s", tc.expected, tc.known, got)
			}
		})
	}
}

func TestDashboardLevelForKnownWords(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		known    int
		expected CEFRLevel
	}{
		{name: "Zero words is A1", known: 0, expected: LevelA1},
		{name: "Just below A2 boundary", known: 99, expected: LevelA1},
		{name: "At A2 boundary", known: 100, expected: LevelA2},
		{name: "Just below B1 boundary", known: 299, expected: LevelA2},
		{name: "At B1 boundary", known: 300, expected: LevelB1},
		{name: "Just below B2 boundary", known: 599, expected: LevelB1},
		{name: "At B2 boundary", known: 600, expected: LevelB2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DashboardLevelForKnownWords(tc.known); got != tc.expected {
				t.Errorf("expected %s for %d known words, got %s", tc.expected, tc.known, got)
			}
		})
	}
}
