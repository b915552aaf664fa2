package interview

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/candidate"
)

// ErrInvalidTransition is returned when an operation is invoked in a state
// that does not permit it. It indicates a caller-side sequencing bug and is
// never swallowed.
var ErrInvalidTransition = errors.New("invalid interview transition")

// followUpSeparator joins a follow-up answer onto the main answer text.
const followUpSeparator = "\n\nFollow-up Answer:\n"

// QuestionSynthesizer turns a tech stack and optional resume context into an
// ordered list of technical questions. It never fails: generation problems
// degrade to a built-in fallback list.
type QuestionSynthesizer interface {
	Synthesize(ctx context.Context, techStack []string, resumeContext string) []string
}

// AnswerAnalyzer classifies an answer and decides whether a follow-up is
// warranted. The follow-up decision belongs here, not to the machine.
type AnswerAnalyzer interface {
	Analyze(ctx context.Context, question, answer string) Assessment
}

// DifficultyAdjuster produces an easier question on the same topic.
type DifficultyAdjuster interface {
	Simplify(ctx context.Context, question string, techStack []string) string
}

// SummarySynthesizer reduces the answer transcript into a performance narrative.
type SummarySynthesizer interface {
	Summarize(ctx context.Context, answers map[string]Answer) string
}

// Assessment is the analyzer verdict for one answer. An empty FollowUp means
// no follow-up is needed.
type Assessment struct {
	Sentiment Sentiment
	FollowUp  string
}

// Machine owns session state transitions. A session must be advanced
// sequentially; the machine itself keeps no per-session data.
type Machine struct {
	questions  QuestionSynthesizer
	analyzer   AnswerAnalyzer
	adjuster   DifficultyAdjuster
	summarizer SummarySynthesizer
	logger     *zap.Logger
}

// NewMachine wires the four generator components into a state machine.
func NewMachine(questions QuestionSynthesizer, analyzer AnswerAnalyzer, adjuster DifficultyAdjuster, summarizer SummarySynthesizer, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Machine{
		questions:  questions,
		analyzer:   analyzer,
		adjuster:   adjuster,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Start builds a new session for the given profile, generates the technical
// questions and asks the first one. When synthesis yields no questions at all
// the session concludes immediately with the empty-answers summary.
func (m *Machine) Start(ctx context.Context, profile candidate.Profile, resumeContext string) (*Session, error) {
	if len(profile.TechStack) == 0 {
		return nil, errors.New("candidate tech stack must not be empty")
	}

	s := &Session{
		Candidate: profile,
		Answers:   make(map[string]Answer),
		State:     StateGathering,
	}

	s.Questions = m.questions.Synthesize(ctx, profile.TechStack, resumeContext)

	m.logger.Info("screening session started",
		zap.String("candidate", profile.FullName),
		zap.Strings("tech_stack", profile.TechStack),
		zap.Int("questions", len(s.Questions)),
		zap.Bool("resume_context", resumeContext != ""),
	)

	if len(s.Questions) == 0 {
		s.Summary = NoAnswersSummary
		s.State = StateConcluded
		return s, nil
	}

	s.appendTurn(RoleAssistant, s.Questions[0])
	s.State = StateMainQuestion

	return s, nil
}

// Advance applies one candidate input to the session. Depending on the
// current state the input is treated as a follow-up answer or as the answer
// to the pending main question; afterwards the machine either asks the next
// question or concludes the session. An input arriving while a follow-up is
// pending is always treated as the follow-up answer, regardless of content.
func (m *Machine) Advance(ctx context.Context, s *Session, input string) error {
	switch s.State {
	case StateConcluded:
		return fmt.Errorf("%w: session is already concluded", ErrInvalidTransition)
	case StateGathering:
		return fmt.Errorf("%w: questions have not been generated yet", ErrInvalidTransition)
	}

	s.appendTurn(RoleUser, input)

	if s.AwaitingFollowUp {
		question := s.Questions[s.Cursor]
		answer := s.Answers[question]
		answer.Text += followUpSeparator + input
		s.Answers[question] = answer

		s.AwaitingFollowUp = false
		s.Cursor++

		m.logger.Debug("follow-up answer recorded", zap.Int("cursor", s.Cursor))
	} else {
		question := s.Questions[s.Cursor]
		assessment := m.analyzer.Analyze(ctx, question, input)
		s.Answers[question] = Answer{Text: input, Sentiment: assessment.Sentiment}

		m.logger.Debug("answer analyzed",
			zap.Int("cursor", s.Cursor),
			zap.String("sentiment", string(assessment.Sentiment)),
			zap.Bool("follow_up", assessment.FollowUp != ""),
		)

		// A follow-up keeps the cursor on the same question slot.
		if assessment.FollowUp != "" {
			s.appendTurn(RoleAssistant, assessment.FollowUp)
			s.AwaitingFollowUp = true
			s.State = StateFollowUp
			return nil
		}

		s.Cursor++
	}

	if s.Cursor < len(s.Questions) {
		s.appendTurn(RoleAssistant, s.Questions[s.Cursor])
		s.State = StateMainQuestion
		return nil
	}

	s.Summary = m.summarizer.Summarize(ctx, s.Answers)
	s.State = StateConcluded

	m.logger.Info("screening session concluded",
		zap.String("candidate", s.Candidate.FullName),
		zap.Int("answers", len(s.Answers)),
	)

	return nil
}

// RequestEasierQuestion replaces the pending main question with an easier
// variant on the same topic. The replacement overwrites both the question
// slot and the last transcript turn; cursor and follow-up flag are untouched.
func (m *Machine) RequestEasierQuestion(ctx context.Context, s *Session) error {
	if s.State != StateMainQuestion {
		return fmt.Errorf("%w: an easier question can only replace a pending main question", ErrInvalidTransition)
	}

	replacement := m.adjuster.Simplify(ctx, s.Questions[s.Cursor], s.Candidate.TechStack)
	s.Questions[s.Cursor] = replacement

	if n := len(s.Transcript); n > 0 {
		s.Transcript[n-1] = Turn{Role: RoleAssistant, Text: replacement}
	}

	m.logger.Debug("question simplified", zap.Int("cursor", s.Cursor))

	return nil
}
