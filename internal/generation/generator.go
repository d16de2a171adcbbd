package generation

import "context"

// Generator defines the interface for LLM-backed content generation.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GenerateStory creates a personalized story from the assembled prompt
	// inputs. It returns a StoryDraft or an error if generation fails
	// (see errors.go for specific types).
	//
	// A malformed but non-empty model response does not fail: the raw text
	// is returned as a degraded draft with no sentence breakdown and no
	// exercises.
	GenerateStory(ctx context.Context, prompt StoryPrompt) (*StoryDraft, error)

	// GradeAnswer asks the model to judge a free-text answer against the
	// expected one. Returns an error when the model cannot be reached or
	// its verdict cannot be parsed; callers are expected to fall back to
	// local matching.
	GradeAnswer(ctx context.Context, prompt GradingPrompt) (*GradingResult, error)
}
