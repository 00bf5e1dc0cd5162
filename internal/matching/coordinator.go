package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/talentsift/resume-ranker/internal/ai"
	"github.com/talentsift/resume-ranker/internal/textproc"
	"github.com/talentsift/resume-ranker/internal/vectorize"
)

const jobKeyTermCount = 20

// Coordinator orchestrates one matching session: normalization, the
// batch-wide vectorizer fit, concurrent per-candidate scoring, optional
// semantic augmentation, and the final deterministic ranking.
//
// Its central contract is fault isolation: a failure while processing one
// candidate becomes that candidate's ERROR record and never aborts siblings.
type Coordinator struct {
	cfg       *Config
	augmenter ai.Augmenter
	log       *zap.Logger
}

// Result is the outcome of a completed session.
type Result struct {
	Session *Session
	// Ranked holds shortlisted and rejected records in ranking order.
	Ranked []*ScoreRecord
	// Records holds every record: the ranked ones first, then ERROR records
	// ordered by candidate ID.
	Records []*ScoreRecord
	// JobKeyTerms are the heaviest TF-IDF terms of the job description,
	// reported so reviewers can see what drove the lexical scores.
	JobKeyTerms []vectorize.TermWeight
}

// NewCoordinator builds a coordinator. A nil augmenter disables the semantic
// path for the whole batch; every semantic score is then absent.
func NewCoordinator(cfg *Config, augmenter ai.Augmenter, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{cfg: cfg, augmenter: augmenter, log: log}
}

type scoringUnit struct {
	candidate *Candidate
	tokens    []string
}

// Run executes the batch. Configuration problems and an empty job
// description are the only fatal errors; everything per-candidate degrades
// into ERROR records. Cancellation through ctx stops dispatching new work,
// keeps the records of already-scored candidates, and marks the rest as
// errored so the finished session still has one record per candidate.
func (c *Coordinator) Run(ctx context.Context, job *JobDescription, batch *Candidates) (*Result, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("job description is required")
	}

	session := newSession(batch.Len())
	normalizer := textproc.NewNormalizer(c.cfg.StopWords)

	jobTokens := normalizer.Tokens(job.Text)
	if len(jobTokens) == 0 {
		return nil, fmt.Errorf("job description produced no usable terms")
	}

	// The vectorizer fit is a single synchronous batch-wide step: every
	// document vector depends on vocabulary and IDF statistics computed
	// from the whole corpus, so nothing can be scored before it finishes.
	var records []*ScoreRecord
	units := make([]*scoringUnit, 0, batch.Len())
	corpus := [][]string{jobTokens}

	for _, candidate := range batch.Items {
		if candidate.ExtractionFailed {
			records = append(records, errorRecord(candidate, "document extraction failed"))
			continue
		}
		unit := &scoringUnit{candidate: candidate, tokens: normalizer.Tokens(candidate.Text)}
		units = append(units, unit)
		corpus = append(corpus, unit.tokens)
	}

	vectorizer := vectorize.Fit(corpus)
	jobVector := vectorizer.Transform(jobTokens)
	keyTerms := vectorizer.TopTerms(jobVector, jobKeyTermCount)

	c.log.Info("vectorizer fitted",
		zap.String("session_id", session.ID),
		zap.Int("documents", len(corpus)),
		zap.Int("vocabulary", vectorizer.Size()),
	)

	records = append(records, c.scoreAll(ctx, job, units, vectorizer, jobVector, keyTerms)...)

	session.finalize(records)

	ranked := Rank(records)
	all := make([]*ScoreRecord, 0, len(records))
	all = append(all, ranked...)
	errored := make([]*ScoreRecord, 0, session.Errors)
	for _, record := range records {
		if record.Status == StatusError {
			errored = append(errored, record)
		}
	}
	sort.Slice(errored, func(i, j int) bool { return errored[i].CandidateID < errored[j].CandidateID })
	all = append(all, errored...)

	c.log.Info("session completed",
		zap.String("session_id", session.ID),
		zap.Int("total", session.Total),
		zap.Int("shortlisted", session.Shortlisted),
		zap.Int("rejected", session.Rejected),
		zap.Int("errors", session.Errors),
		zap.Float64("average_score", session.AverageScore),
		zap.Duration("duration", session.Duration),
	)

	return &Result{
		Session:     session,
		Ranked:      ranked,
		Records:     all,
		JobKeyTerms: keyTerms,
	}, nil
}

// scoreAll fans the scoring units out over a bounded worker pool. Workers
// share no mutable state: each unit produces exactly one write-once record,
// and the records are aggregated in a single pass afterwards.
func (c *Coordinator) scoreAll(ctx context.Context, job *JobDescription, units []*scoringUnit, vectorizer *vectorize.Vectorizer, jobVector []float64, keyTerms []vectorize.TermWeight) []*ScoreRecord {
	if len(units) == 0 {
		return nil
	}

	workers := c.cfg.WorkerCount()
	if workers > len(units) {
		workers = len(units)
	}

	jobs := make(chan *scoringUnit)
	results := make(chan *ScoreRecord, len(units))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range jobs {
				results <- c.scoreOne(ctx, job, unit, vectorizer, jobVector, keyTerms)
			}
		}()
	}

	dispatched := 0
dispatch:
	for _, unit := range units {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- unit:
			dispatched++
		}
	}
	close(jobs)

	wg.Wait()
	close(results)

	records := make([]*ScoreRecord, 0, len(units))
	for record := range results {
		records = append(records, record)
	}

	// Units never dispatched before cancellation still owe the session a
	// record each.
	if dispatched < len(units) {
		c.log.Warn("batch cancelled before all candidates were dispatched",
			zap.Int("dispatched", dispatched),
			zap.Int("remaining", len(units)-dispatched),
		)
		for _, unit := range units[dispatched:] {
			records = append(records, errorRecord(unit.candidate, "cancelled before scoring"))
		}
	}

	return records
}

// scoreOne produces the record for a single candidate. Any panic escaping
// the scoring path is converted into an ERROR record so one malformed
// document cannot take down the batch.
func (c *Coordinator) scoreOne(ctx context.Context, job *JobDescription, unit *scoringUnit, vectorizer *vectorize.Vectorizer, jobVector []float64, keyTerms []vectorize.TermWeight) (record *ScoreRecord) {
	candidate := unit.candidate

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("candidate scoring panicked",
				zap.String("candidate_id", candidate.ID),
				zap.Any("panic", r),
			)
			record = errorRecord(candidate, fmt.Sprintf("scoring panicked: %v", r))
		}
	}()

	lexical := vectorize.Cosine(jobVector, vectorizer.Transform(unit.tokens))

	var semantic *float64
	var semanticReason string
	if c.augmenter != nil {
		result := c.augmenter.Assess(ctx, job.Text, candidate.Text)
		semanticReason = result.Reason
		if result.Available {
			score := result.Score
			semantic = &score
		} else {
			c.log.Warn("semantic score unavailable, using lexical score only",
				zap.String("candidate_id", candidate.ID),
				zap.String("reason", result.Reason),
			)
		}
	}

	combined := Combine(lexical, semantic, c.cfg.BlendWeight)

	status := StatusRejected
	if combined >= c.cfg.SimilarityThreshold {
		status = StatusShortlisted
	}

	c.log.Debug("candidate scored",
		zap.String("candidate_id", candidate.ID),
		zap.Float64("lexical_score", lexical),
		zap.Float64("combined_score", combined),
		zap.String("status", string(status)),
	)

	return &ScoreRecord{
		CandidateID:     candidate.ID,
		LexicalScore:    lexical,
		SemanticScore:   semantic,
		SemanticReason:  semanticReason,
		CombinedScore:   combined,
		Status:          status,
		ExperienceYears: candidate.Profile.ExperienceYears,
		MatchedTerms:    matchedTerms(keyTerms, unit.tokens),
		Recommendation:  Recommend(combined),
	}
}

func errorRecord(candidate *Candidate, reason string) *ScoreRecord {
	return &ScoreRecord{
		CandidateID:     candidate.ID,
		Status:          StatusError,
		Error:           reason,
		ExperienceYears: candidate.Profile.ExperienceYears,
	}
}

// matchedTerms reports which of the job description's key terms appear in
// the candidate's token stream, in key-term order.
func matchedTerms(keyTerms []vectorize.TermWeight, tokens []string) []string {
	if len(keyTerms) == 0 || len(tokens) == 0 {
		return nil
	}

	present := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		present[token] = true
	}

	var matched []string
	for _, term := range keyTerms {
		if present[term.Term] {
			matched = append(matched, term.Term)
		}
	}
	return matched
}
