package gemini

import (
	"fmt"
	"strings"

	"github.com/monkesay/monke-api/internal/generation"
)

// maxKnownWordsInPrompt caps how much known vocabulary goes into the
// prompt so it stays within a sensible token budget.
const maxKnownWordsInPrompt = 200

// buildStoryPrompt renders the story generation prompt. The model is told
// exactly what JSON shape to return; parsing tolerates fenced output.
func buildStoryPrompt(p generation.StoryPrompt) string {
	known := p.KnownWords
	if len(known) > maxKnownWordsInPrompt {
		known = known[:maxKnownWordsInPrompt]
	}

	var knownLines []string
	for _, w := range known {
		knownLines = append(knownLines, fmt.Sprintf("- %s (%s): %s", w.Hindi, w.Romanized, w.English))
	}
	knownVocab := strings.Join(knownLines, "\n")
	if knownVocab == "" {
		knownVocab = "Basic greetings and pronouns"
	}

	var newLines []string
	for _, w := range p.NewWords {
		newLines = append(newLines, fmt.Sprintf("- %s (%s): %s", w.Hindi, w.Romanized, w.English))
	}
	newVocab := strings.Join(newLines, "\n")

	var grammarLines []string
	for _, g := range p.Grammar {
		grammarLines = append(grammarLines, fmt.Sprintf("- %s: %s", g.Name, g.Description))
	}
	grammar := strings.Join(grammarLines, "\n")
	if grammar == "" {
		grammar = "Basic sentence structure"
	}

	topic := p.Topic
	if topic == "" {
		topic = "daily life"
	}

	return fmt.Sprintf(`You are a Hindi language teaching assistant. Generate a short story for a language learner at %s level.

KNOWN VOCABULARY (the learner can read these):
%s

NEW WORDS TO INTRODUCE (use each at least twice):
%s

GRAMMAR TO PRACTICE:
%s

TOPIC: %s

CONSTRAINTS:
- 8-12 sentences long
- Use only known vocabulary + new words (proper nouns like names are OK)
- Every new word must appear at least twice in different sentences
- Include 1-2 lines of dialogue
- Keep sentences simple and clear

Return your response as valid JSON with this exact structure:
{
  "title": "Story title in Hindi and English",
  "content_hindi": "Full story in Devanagari",
  "content_romanized": "Full story romanized",
  "content_english": "English translation",
  "word_count": 0,
  "sentences": [
    {
      "index": 0,
      "hindi": "Sentence in Devanagari",
      "romanized": "Sentence romanized",
      "english": "English translation",
      "words": [
        {
          "hindi": "word",
          "romanized": "word",
          "english": "meaning",
          "is_new": false
        }
      ]
    }
  ],
  "exercises": [
    {
      "type": "COMPREHENSION/FILL_BLANK/TRANSLATE_TO_HINDI/TRANSLATE_TO_ENGLISH/MULTIPLE_CHOICE",
      "prompt": "Question text",
      "correct_answer": "The correct answer",
      "options": ["option1", "option2", "option3", "option4"],
      "explanation": "Optional explanation"
    }
  ]
}

Generate 4-6 exercises mixing comprehension and vocabulary practice.`,
		p.Level, knownVocab, newVocab, grammar, topic)
}

// buildGradingPrompt renders the answer grading prompt.
func buildGradingPrompt(p generation.GradingPrompt) string {
	return fmt.Sprintf(`You are evaluating a Hindi language learner's translation.
Be lenient with minor spelling variations in romanized Hindi.
Accept synonyms and alternative phrasings that convey the same meaning.
Focus on whether the grammar structure and meaning are correct.

Question: %s
Expected answer: %s
Student's answer: %s

Evaluate: is this correct, partially correct, or incorrect?
Give brief, encouraging feedback in 1-2 sentences.

Respond in JSON format:
{
  "is_correct": true,
  "feedback": "Your encouraging feedback here"
}`,
		p.Question, p.ExpectedAnswer, p.StudentAnswer)
}

// extractJSONBlock strips markdown code fences from a model response,
// returning the inner payload. Responses without fences pass through
// trimmed.
func extractJSONBlock(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}
