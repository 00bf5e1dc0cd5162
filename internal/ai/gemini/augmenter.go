package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/talentsift/resume-ranker/internal/ai"
	"github.com/talentsift/resume-ranker/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Augmenter asks Gemini to rate the relevance of a resume to a job
// description. Every call is bounded by a per-call timeout and retried with
// exponential backoff; once the retry budget is spent the result degrades to
// Unavailable instead of failing the candidate.
type Augmenter struct {
	generator  contentGenerator
	timeout    time.Duration
	maxRetries int
	maxLogLen  int
	log        *zap.Logger
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	backoffBase = 500 * time.Millisecond
	backoffCap  = 8 * time.Second

	// The prompt asks for a 0-10 rating which is normalized into [0,1].
	promptScale = 10
)

func NewAugmenter(generator contentGenerator, timeout time.Duration, maxRetries, maxLogLength int, log *zap.Logger) *Augmenter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Augmenter{
		generator:  generator,
		timeout:    timeout,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		log:        log,
	}
}

// Assess implements ai.Augmenter.
func (a *Augmenter) Assess(ctx context.Context, jobText, resumeText string) *ai.SemanticResult {
	if strings.TrimSpace(resumeText) == "" {
		return ai.Unavailable("resume text is empty")
	}

	prompt := buildPrompt(jobText, resumeText)

	a.log.Debug("gemini relevance request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			if err := waitFor(ctx, backoffDelay(attempt)); err != nil {
				return ai.Unavailable(fmt.Sprintf("cancelled while retrying: %v", err))
			}
			a.log.Debug("retrying gemini relevance request",
				zap.Int("attempt", attempt),
				zap.NamedError("previous_error", lastErr),
			)
		}

		raw, err := a.generate(ctx, prompt)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return ai.Unavailable(fmt.Sprintf("cancelled: %v", ctx.Err()))
			}
			continue
		}

		a.log.Debug("gemini relevance response",
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
		)

		score, reason, err := parseResponse(raw)
		if err != nil {
			lastErr = err
			continue
		}

		return &ai.SemanticResult{
			Score:     score,
			Available: true,
			Reason:    reason,
			Raw:       raw,
		}
	}

	return ai.Unavailable(fmt.Sprintf("exhausted %d attempts: %v", a.maxRetries+1, lastErr))
}

func (a *Augmenter) generate(ctx context.Context, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	return a.generator.GenerateContent(ctx, prompt)
}

func backoffDelay(attempt int) time.Duration {
	delay := backoffBase << (attempt - 1)
	if delay > backoffCap || delay <= 0 {
		return backoffCap
	}
	return delay
}

// waitFor sleeps for the given duration but wakes up early on cancellation.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func buildPrompt(jobText, resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n{{JOB_DESCRIPTION}}\n\nResume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{JOB_DESCRIPTION}}", jobText)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)
	return prompt
}

func parseResponse(raw string) (float64, string, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return 0, "", fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		return 0, "", fmt.Errorf("gemini response has no numeric score: %s", cleaned)
	}
	if score < 0 || score > promptScale {
		return 0, "", fmt.Errorf("gemini score %v is outside the 0-%d scale", score, promptScale)
	}

	return score / promptScale, coerceString(data["reason"]), nil
}

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

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
