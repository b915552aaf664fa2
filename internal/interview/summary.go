package interview

import (
	"context"
	"fmt"
	"sort"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

//go:embed prompt_summary.md
var summaryTemplate string

// NoAnswersSummary is the fixed narrative for a session without any recorded
// technical answers. The generator is not consulted in that case.
const NoAnswersSummary = "No technical answers were provided."

// Summarizer reduces the full question/answer/sentiment transcript into a
// structured performance narrative.
type Summarizer struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewSummarizer(generator ai.Generator, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}

	return &Summarizer{generator: generator, logger: log}
}

// Summarize returns the performance narrative for the given answers. On
// generation failure it returns a fixed literal embedding the error detail;
// it never fails.
func (s *Summarizer) Summarize(ctx context.Context, answers map[string]Answer) string {
	if len(answers) == 0 {
		return NoAnswersSummary
	}

	prompt := strings.ReplaceAll(summaryTemplate, "{{QA_TEXT}}", serializeAnswers(answers))

	summary, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("summary generation failed", zap.Error(err))
		return fmt.Sprintf("Could not generate AI summary due to an error: %v", err)
	}

	return strings.TrimSpace(summary)
}

// serializeAnswers renders every question with its sentiment and answer text
// into a single block. Questions are sorted so the output is deterministic.
func serializeAnswers(answers map[string]Answer) string {
	questions := make([]string, 0, len(answers))
	for question := range answers {
		questions = append(questions, question)
	}
	sort.Strings(questions)

	var b strings.Builder
	for _, question := range questions {
		answer := answers[question]

		text := answer.Text
		if text == "" {
			text = "No answer provided."
		}

		sentiment := answer.Sentiment
		if sentiment == "" {
			sentiment = SentimentUnknown
		}

		fmt.Fprintf(&b, "Question: %s\nSentiment: %s\nAnswer: %s\n\n", question, sentiment, text)
	}

	return b.String()
}
