package matching

import (
	"fmt"
	"runtime"
	"time"
)

const DefaultThreshold = 0.3

// DefaultBlendWeight is the default contribution of the semantic score to
// the combined score. The upstream material only claims a qualitative
// improvement from blending, so the weight stays configurable and defaults
// to a lexical-heavy split.
const DefaultBlendWeight = 0.3

// Config is the validated configuration surface of one batch run. It is
// constructed once at batch start; out-of-range values are rejected there,
// never mid-batch.
type Config struct {
	// SimilarityThreshold separates SHORTLISTED from REJECTED, in [0,1].
	SimilarityThreshold float64
	// BlendWeight is the semantic share of the combined score, in [0,1].
	BlendWeight float64
	// Workers bounds scoring concurrency. Zero means one worker per CPU.
	Workers int
	// LLMEnabled gates the semantic augmentation path for the whole batch.
	LLMEnabled bool
	// LLMTimeout bounds each augmentation call.
	LLMTimeout time.Duration
	// LLMMaxRetries bounds retries per augmentation call.
	LLMMaxRetries int
	// StopWords overrides the built-in stop-word set when non-nil.
	StopWords []string
}

// Validate checks every recognized option and returns the first violation.
// A validation error is fatal for the batch before any scoring starts.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %v must be within [0,1]", c.SimilarityThreshold)
	}
	if c.BlendWeight < 0 || c.BlendWeight > 1 {
		return fmt.Errorf("blend weight %v must be within [0,1]", c.BlendWeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative", c.Workers)
	}
	if c.LLMEnabled {
		if c.LLMTimeout <= 0 {
			return fmt.Errorf("llm timeout %v must be positive", c.LLMTimeout)
		}
		if c.LLMMaxRetries < 0 {
			return fmt.Errorf("llm max retries %d must not be negative", c.LLMMaxRetries)
		}
	}
	return nil
}

// WorkerCount resolves the configured worker bound, defaulting to the number
// of available cores.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
