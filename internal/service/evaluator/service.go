// Package evaluator grades exercise answers. Choice and ordering
// exercises compare exactly after normalization, fill-in-the-blank
// tolerates romanization variants and small typos, and free-text
// translations are graded by the language model with the fuzzy matcher
// as a fallback when the model is unavailable.
package evaluator

import (
	"context"

	"github.com/monkesay/monke-api/internal/domain"
)

// EvaluatorService grades a user's answer to an exercise.
type EvaluatorService interface {
	// Evaluate grades the answer according to the exercise type.
	//
	// Evaluation itself never fails: collaborator errors degrade to the
	// fuzzy matcher, and an unknown exercise type grades as incorrect.
	// The returned error is reserved for context cancellation.
	Evaluate(
		ctx context.Context,
		exercise *domain.Exercise,
		answer string,
	) (domain.EvaluationResult, error)
}
