package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/monkesay/monke-api/internal/config"
	"github.com/monkesay/monke-api/internal/generation"
)

// baseRetryDelaySeconds is the first backoff step; subsequent attempts
// double it with jitter.
const baseRetryDelaySeconds = 2

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Compile-time check that GeminiGenerator satisfies the interface.
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateStory creates a personalized story from the assembled prompt
// inputs.
//
// The model's response is expected to be the JSON structure described in
// the prompt, possibly wrapped in markdown fences. When the payload does
// not parse as JSON the raw text is kept as the story content and the
// draft carries no sentence breakdown or exercises; only transport-level
// failures surface as errors.
func (g *GeminiGenerator) GenerateStory(
	ctx context.Context,
	prompt generation.StoryPrompt,
) (*generation.StoryDraft, error) {
	if len(prompt.NewWords) == 0 {
		return nil, fmt.Errorf("%w: no new words to introduce", generation.ErrInvalidConfig)
	}

	promptText := buildStoryPrompt(prompt)
	text, err := g.callWithRetry(ctx, promptText)
	if err != nil {
		return nil, err
	}

	payload := extractJSONBlock(text)

	var schema storySchema
	if err := json.Unmarshal([]byte(payload), &schema); err != nil {
		g.logger.WarnContext(ctx, "story response is not valid JSON, degrading to raw content",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(text)))
		return &generation.StoryDraft{
			Title:        "Generated Story",
			ContentHindi: text,
			Prompt:       promptText,
			ModelName:    g.model,
			RawResponse:  text,
		}, nil
	}

	draft := schema.toDraft()
	draft.Prompt = promptText
	draft.ModelName = g.model
	draft.RawResponse = text
	if draft.Title == "" {
		draft.Title = "Generated Story"
	}
	if draft.ContentHindi == "" {
		draft.ContentHindi = text
	}

	g.logger.InfoContext(ctx, "story generated",
		slog.Int("sentence_count", len(draft.Sentences)),
		slog.Int("exercise_count", len(draft.Exercises)))

	return &draft, nil
}

// GradeAnswer asks the model to judge a free-text answer. Unlike story
// generation, an unparseable verdict is an error; callers fall back to
// local matching.
func (g *GeminiGenerator) GradeAnswer(
	ctx context.Context,
	prompt generation.GradingPrompt,
) (*generation.GradingResult, error) {
	if prompt.StudentAnswer == "" || prompt.ExpectedAnswer == "" {
		return nil, ErrEmptyPrompt
	}

	text, err := g.callWithRetry(ctx, buildGradingPrompt(prompt))
	if err != nil {
		return nil, err
	}

	var schema gradingSchema
	if err := json.Unmarshal([]byte(extractJSONBlock(text)), &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse grading verdict: %v",
			generation.ErrInvalidResponse, err)
	}

	return &generation.GradingResult{
		Correct:  schema.IsCorrect,
		Feedback: schema.Feedback,
	}, nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// It attempts to call the API up to config.MaxRetries times, using exponential backoff
// with jitter between retries for transient errors. Permanent errors (like content being
// blocked by safety filters) are returned immediately without retrying.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}
	timeout := time.Duration(g.config.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1 // For logging (1-based)
		g.logger.InfoContext(ctx, "making Gemini API call",
			slog.Int("attempt", attemptNum),
			slog.Int("max_attempts", maxRetries+1))

		text, err, transient := g.callOnce(ctx, prompt, timeout)
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				slog.Int("attempt", attemptNum))
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attemptNum),
			slog.String("error", err.Error()))

		if !transient {
			return "", err
		}
		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "maximum retry attempts reached",
				slog.Int("max_retries", maxRetries))
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseRetryDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			slog.Int("attempt", attemptNum),
			slog.Float64("delay_seconds", delay.Seconds()))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				slog.Int("attempt", attemptNum))
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single bounded API call. The third return value
// reports whether a failure is worth retrying.
func (g *GeminiGenerator) callOnce(
	ctx context.Context,
	prompt string,
	timeout time.Duration,
) (string, error, bool) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		// Network and server errors are assumed transient
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err), true
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse), false
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked), false
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse), false
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrInvalidResponse), false
	}

	return text, nil, false
}
