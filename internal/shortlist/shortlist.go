package shortlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/store"
)

//go:embed prompt_report.md
var reportTemplate string

// NoRecordsReport is returned when there are no screening records to analyze.
const NoRecordsReport = "No candidate summaries found to analyze."

const defaultMaxLogLength = 200

// Shortlister turns stored screening records into a hiring-manager style
// shortlisting report for a given job description. Unlike the interview-side
// components it surfaces generation errors: the recruiter runs it on demand
// and can simply retry.
type Shortlister struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func New(generator ai.Generator, log *zap.Logger, maxLogLength int) *Shortlister {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Shortlister{generator: generator, logger: log, maxLogLen: maxLogLength}
}

// Report produces the markdown shortlisting report.
func (s *Shortlister) Report(ctx context.Context, jobDescription string, records []*store.Record) (string, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return "", errors.New("job description is required")
	}

	if len(records) == 0 {
		return NoRecordsReport, nil
	}

	profiles, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate records: %w", err)
	}

	prompt := strings.ReplaceAll(reportTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_PROFILES}}", string(profiles))

	s.logger.Debug("shortlisting report request",
		zap.Int("candidates", len(records)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("job_description_preview", logger.TruncateForLog(jobDescription, s.maxLogLen)),
	)

	report, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate shortlisting report: %w", err)
	}

	return strings.TrimSpace(report), nil
}
