package domain

// StoryLevelForKnownWords maps a known-word count onto the CEFR level used
// when requesting story generation. The thresholds are deliberately lower
// than the dashboard ones so stories push slightly ahead of where the
// dashboard says the learner sits.
func StoryLevelForKnownWords(knownWords int) CEFRLevel {
	switch {
	case knownWords < 50:
		return LevelA1
	case knownWords < 150:
		return LevelA2
	case knownWords < 400:
		return LevelB1
	default:
		return LevelB2
	}
}

// DashboardLevelForKnownWords maps a known-word count onto the CEFR level
// shown on the user dashboard. Kept separate from the story thresholds; the
// two scales answer different questions and must not be merged.
func DashboardLevelForKnownWords(knownWords int) CEFRLevel {
	switch {
	case knownWords < 100:
		return LevelA1
	case knownWords < 300:
		return LevelA2
	case knownWords < 600:
		return LevelB1
	default:
		return LevelB2
	}
}
