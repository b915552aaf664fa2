package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSummarizeEmptyAnswersSkipsGenerator(t *testing.T) {
	stub := &stubGenerator{response: "should never be requested"}
	summarizer := NewSummarizer(stub, zap.NewNop())

	got := summarizer.Summarize(context.Background(), map[string]Answer{})

	if got != NoAnswersSummary {
		t.Fatalf("expected the empty-answers literal, got %q", got)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no generation call, got %d", stub.calls)
	}
}

func TestSummarizeSerializesTranscript(t *testing.T) {
	stub := &stubGenerator{response: "Overall a strong candidate."}
	summarizer := NewSummarizer(stub, zap.NewNop())

	answers := map[string]Answer{
		"How do goroutines differ from threads?": {Text: "They are cheap.", Sentiment: SentimentConfident},
		"Describe a deadlock you debugged.":      {Text: "I once had two mutexes...", Sentiment: SentimentHesitant},
	}

	got := summarizer.Summarize(context.Background(), answers)
	if got != "Overall a strong candidate." {
		t.Fatalf("unexpected summary: %q", got)
	}

	for _, expected := range []string{
		"Question: How do goroutines differ from threads?",
		"Sentiment: Confident",
		"Answer: They are cheap.",
		"Question: Describe a deadlock you debugged.",
		"Sentiment: Hesitant",
	} {
		if !strings.Contains(stub.lastPrompt, expected) {
			t.Fatalf("expected prompt to contain %q, got: %s", expected, stub.lastPrompt)
		}
	}
}

func TestSummarizeDefaultsForMissingFields(t *testing.T) {
	stub := &stubGenerator{response: "ok"}
	summarizer := NewSummarizer(stub, zap.NewNop())

	summarizer.Summarize(context.Background(), map[string]Answer{
		"Q": {},
	})

	if !strings.Contains(stub.lastPrompt, "Sentiment: N/A") {
		t.Fatalf("expected the N/A sentinel for a missing sentiment")
	}
	if !strings.Contains(stub.lastPrompt, "Answer: No answer provided.") {
		t.Fatalf("expected the missing-answer placeholder")
	}
}

func TestSummarizeEmbedsErrorOnFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exhausted")}
	summarizer := NewSummarizer(stub, zap.NewNop())

	got := summarizer.Summarize(context.Background(), map[string]Answer{
		"Q": {Text: "A", Sentiment: SentimentNeutral},
	})

	if !strings.HasPrefix(got, "Could not generate AI summary due to an error:") {
		t.Fatalf("expected the failure literal, got %q", got)
	}
	if !strings.Contains(got, "quota exhausted") {
		t.Fatalf("expected the error detail to be embedded, got %q", got)
	}
}
