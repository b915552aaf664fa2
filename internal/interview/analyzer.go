package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
)

//go:embed prompt_analyze.md
var analyzeTemplate string

const defaultMaxLogLength = 200

// Analyzer classifies candidate answers and proposes at most one follow-up
// question per main question.
type Analyzer struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator ai.Generator, log *zap.Logger, maxLogLength int) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyzer{generator: generator, logger: log, maxLogLen: maxLogLength}
}

type analyzerResponse struct {
	Sentiment string `mapstructure:"sentiment"`
	FollowUp  string `mapstructure:"follow_up_question"`
}

// Analyze returns the sentiment classification and an optional follow-up for
// the given answer. Any generation or parse failure degrades to the N/A
// sentinel with no follow-up, which the machine treats as "answered, move on".
func (a *Analyzer) Analyze(ctx context.Context, question, answer string) Assessment {
	prompt := strings.ReplaceAll(analyzeTemplate, "{{QUESTION}}", question)
	prompt = strings.ReplaceAll(prompt, "{{ANSWER}}", answer)

	a.logger.Debug("answer analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("question_preview", logger.TruncateForLog(question, a.maxLogLen)),
	)

	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Warn("answer analysis failed, recording sentiment as N/A", zap.Error(err))
		return Assessment{Sentiment: SentimentUnknown}
	}

	a.logger.Debug("answer analysis response",
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	assessment, err := parseAssessment(raw)
	if err != nil {
		a.logger.Warn("answer analysis response is unparseable, recording sentiment as N/A", zap.Error(err))
		return Assessment{Sentiment: SentimentUnknown}
	}

	return assessment
}

func parseAssessment(raw string) (Assessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Assessment{}, fmt.Errorf("parse analysis response: %w", err)
	}

	var resp analyzerResponse
	cfg := &mapstructure.DecoderConfig{
		Result:           &resp,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Assessment{}, fmt.Errorf("build analysis decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return Assessment{}, fmt.Errorf("decode analysis response: %w", err)
	}

	followUp := strings.TrimSpace(resp.FollowUp)
	if strings.EqualFold(followUp, "null") || strings.EqualFold(followUp, "none") {
		followUp = ""
	}

	return Assessment{
		Sentiment: normalizeSentiment(resp.Sentiment),
		FollowUp:  followUp,
	}, nil
}

func normalizeSentiment(raw string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confident":
		return SentimentConfident
	case "neutral":
		return SentimentNeutral
	case "hesitant":
		return SentimentHesitant
	default:
		return SentimentUnknown
	}
}

// extractJSON strips markdown code fences the model tends to wrap around
// structured responses.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
