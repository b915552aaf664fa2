package interview

import "github.com/talentscout/screener/internal/candidate"

// State identifies where a screening session is in its lifecycle.
type State string

const (
	// StateGathering is the entry state, before questions are generated.
	StateGathering State = "gathering"
	// StateMainQuestion means the question at Cursor awaits an answer.
	StateMainQuestion State = "main_question"
	// StateFollowUp means a follow-up to the question at Cursor awaits an answer.
	StateFollowUp State = "follow_up"
	// StateConcluded is terminal; the summary is set and no transition leaves it.
	StateConcluded State = "concluded"
)

// Sentiment is the coarse confidence classification of a candidate answer.
type Sentiment string

const (
	SentimentConfident Sentiment = "Confident"
	SentimentNeutral   Sentiment = "Neutral"
	SentimentHesitant  Sentiment = "Hesitant"
	// SentimentUnknown is the sentinel used when classification failed.
	SentimentUnknown Sentiment = "N/A"
)

const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Turn is a single transcript entry, kept for display and export only.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Answer records what the candidate said to one main question. Text is
// append-only except for the follow-up concatenation performed by the machine.
type Answer struct {
	Text      string    `json:"answer"`
	Sentiment Sentiment `json:"sentiment"`
}

// Session is the mutable aggregate owned by the state machine for the
// lifetime of one screening. Questions keeps a fixed length once generated;
// entries may only be replaced in place by an easier variant. Cursor is
// monotonically non-decreasing within [0, len(Questions)].
type Session struct {
	Candidate        candidate.Profile `json:"candidate"`
	Questions        []string          `json:"questions"`
	Answers          map[string]Answer `json:"answers"`
	Cursor           int               `json:"cursor"`
	AwaitingFollowUp bool              `json:"awaiting_follow_up"`
	Transcript       []Turn            `json:"transcript"`
	Summary          string            `json:"summary,omitempty"`
	State            State             `json:"state"`
}

// CurrentQuestion returns the main question the session is positioned on.
func (s *Session) CurrentQuestion() (string, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return "", false
	}
	return s.Questions[s.Cursor], true
}

// Concluded reports whether the session reached its terminal state.
func (s *Session) Concluded() bool {
	return s.State == StateConcluded
}

// LastTurn returns the most recent transcript entry.
func (s *Session) LastTurn() (Turn, bool) {
	if len(s.Transcript) == 0 {
		return Turn{}, false
	}
	return s.Transcript[len(s.Transcript)-1], true
}

func (s *Session) appendTurn(role, text string) {
	s.Transcript = append(s.Transcript, Turn{Role: role, Text: text})
}
