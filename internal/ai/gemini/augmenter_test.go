package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubGenerator struct {
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("no more responses queued")
}

type blockingGenerator struct{}

func (b *blockingGenerator) GenerateContent(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestAssessParsesScore(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"score": 7.5, "reason": "Solid backend overlap"}`}}
	augmenter := NewAugmenter(stub, time.Second, 0, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "Python backend engineer", "Python developer, 5 years")

	if !result.Available {
		t.Fatalf("expected available result, got unavailable: %s", result.Reason)
	}
	if result.Score != 0.75 {
		t.Fatalf("expected score 0.75, got %v", result.Score)
	}
	if result.Reason != "Solid backend overlap" {
		t.Fatalf("unexpected reason: %s", result.Reason)
	}
	if !strings.Contains(stub.lastPrompt, "Python backend engineer") {
		t.Fatalf("prompt does not contain the job description")
	}
	if !strings.Contains(stub.lastPrompt, "Python developer, 5 years") {
		t.Fatalf("prompt does not contain the resume text")
	}
}

func TestAssessHandlesCodeBlock(t *testing.T) {
	stub := &stubGenerator{responses: []string{"```json\n{\"score\": \"9\", \"reason\": \"match\"}\n```"}}
	augmenter := NewAugmenter(stub, time.Second, 0, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "jd", "resume")

	if !result.Available {
		t.Fatalf("expected available result, got: %s", result.Reason)
	}
	if result.Score != 0.9 {
		t.Fatalf("expected score 0.9, got %v", result.Score)
	}
}

func TestAssessRetriesThenSucceeds(t *testing.T) {
	stub := &stubGenerator{
		errs:      []error{errors.New("rate limited"), nil},
		responses: []string{"", `{"score": 4, "reason": "partial"}`},
	}
	augmenter := NewAugmenter(stub, time.Second, 2, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "jd", "resume")

	if !result.Available {
		t.Fatalf("expected recovery after retry, got: %s", result.Reason)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", stub.calls)
	}
	if result.Score != 0.4 {
		t.Fatalf("expected score 0.4, got %v", result.Score)
	}
}

func TestAssessExhaustsRetries(t *testing.T) {
	stub := &stubGenerator{errs: []error{
		errors.New("boom"), errors.New("boom"), errors.New("boom"),
	}}
	augmenter := NewAugmenter(stub, time.Second, 2, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "jd", "resume")

	if result.Available {
		t.Fatalf("expected unavailable result")
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.calls)
	}
	if !strings.Contains(result.Reason, "boom") {
		t.Fatalf("expected reason to carry the last error, got: %s", result.Reason)
	}
}

func TestAssessRejectsOutOfScaleScore(t *testing.T) {
	stub := &stubGenerator{responses: []string{`{"score": 42, "reason": "nope"}`}}
	augmenter := NewAugmenter(stub, time.Second, 0, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "jd", "resume")

	if result.Available {
		t.Fatalf("expected out-of-scale score to be unavailable")
	}
}

func TestAssessEmptyResume(t *testing.T) {
	stub := &stubGenerator{}
	augmenter := NewAugmenter(stub, time.Second, 0, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "jd", "   ")

	if result.Available {
		t.Fatalf("expected unavailable for empty resume")
	}
	if stub.calls != 0 {
		t.Fatalf("expected no generator calls, got %d", stub.calls)
	}
}

func TestAssessTimeoutDegrades(t *testing.T) {
	augmenter := NewAugmenter(&blockingGenerator{}, 10*time.Millisecond, 0, 0, zap.NewNop())

	result := augmenter.Assess(context.Background(), "jd", "resume")

	if result.Available {
		t.Fatalf("expected timeout to degrade to unavailable")
	}
}

func TestBackoffDelayIsBoundedAndGrowing(t *testing.T) {
	var prev time.Duration
	for attempt := 1; attempt <= 10; attempt++ {
		d := backoffDelay(attempt)
		if d <= 0 || d > backoffCap {
			t.Fatalf("attempt %d: delay %v out of bounds", attempt, d)
		}
		if d < prev {
			t.Fatalf("attempt %d: delay %v shrank below %v", attempt, d, prev)
		}
		prev = d
	}
}
