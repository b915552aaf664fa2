package interview

import (
	"context"
	"regexp"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
)

//go:embed prompt_questions_stack.md
var questionsStackTemplate string

//go:embed prompt_questions_resume.md
var questionsResumeTemplate string

var numberedItem = regexp.MustCompile(`(?m)\d+[.)]\s*(.+)`)

// Questioner generates the initial technical question list from the declared
// tech stack, grounding questions in resume context when it is available.
type Questioner struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestioner(generator ai.Generator, log *zap.Logger, maxLogLength int) *Questioner {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Questioner{generator: generator, logger: log, maxLogLen: maxLogLength}
}

// Synthesize returns an ordered list of at least one question. Generation
// failure or an unparseable response degrades to the built-in fallback list;
// no error ever reaches the caller.
func (q *Questioner) Synthesize(ctx context.Context, techStack []string, resumeContext string) []string {
	template := questionsStackTemplate
	if strings.TrimSpace(resumeContext) != "" {
		template = questionsResumeTemplate
	}

	prompt := strings.ReplaceAll(template, "{{TECH_STACK}}", strings.Join(techStack, ", "))
	prompt = strings.ReplaceAll(prompt, "{{RESUME_CONTEXT}}", resumeContext)

	raw, err := q.generator.Generate(ctx, prompt)
	if err != nil {
		q.logger.Warn("question generation failed, using fallback questions", zap.Error(err))
		return fallbackQuestions()
	}

	q.logger.Debug("question generation response",
		zap.String("response_preview", logger.TruncateForLog(raw, q.maxLogLen)),
	)

	questions := parseNumberedList(raw)
	if len(questions) == 0 {
		q.logger.Warn("question generation returned no parseable list, using fallback questions")
		return fallbackQuestions()
	}

	return questions
}

func parseNumberedList(raw string) []string {
	matches := numberedItem.FindAllStringSubmatch(raw, -1)

	questions := make([]string, 0, len(matches))
	for _, match := range matches {
		item := strings.TrimSpace(match[1])
		if item != "" {
			questions = append(questions, item)
		}
	}

	return questions
}

func fallbackQuestions() []string {
	return []string{
		"Could you describe a challenging project you've worked on with your listed technologies?",
		"How do you stay updated with the latest trends in your tech stack?",
	}
}
