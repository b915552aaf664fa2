package interview

import (
	"context"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
)

//go:embed prompt_easier.md
var easierTemplate string

// fallbackEasierQuestion is used when the generation call fails.
const fallbackEasierQuestion = "Could you please describe a core concept related to your tech stack?"

// Adjuster replaces a question the candidate found too difficult with a more
// fundamental one on the same topic.
type Adjuster struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdjuster(generator ai.Generator, log *zap.Logger, maxLogLength int) *Adjuster {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Adjuster{generator: generator, logger: log, maxLogLen: maxLogLength}
}

// Simplify produces exactly one easier question on the topic of the original.
// On failure it returns a fixed generic question; it never fails.
func (a *Adjuster) Simplify(ctx context.Context, question string, techStack []string) string {
	prompt := strings.ReplaceAll(easierTemplate, "{{QUESTION}}", question)
	prompt = strings.ReplaceAll(prompt, "{{TECH_STACK}}", strings.Join(techStack, ", "))

	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("easier question generation failed, using generic fallback", zap.Error(err))
		return fallbackEasierQuestion
	}

	replacement := strings.TrimSpace(raw)
	if replacement == "" {
		return fallbackEasierQuestion
	}

	a.logger.Debug("question simplified",
		zap.String("original_preview", logger.TruncateForLog(question, a.maxLogLen)),
		zap.String("replacement_preview", logger.TruncateForLog(replacement, a.maxLogLen)),
	)

	return replacement
}
