package usecase

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/skillsync/skillsync/internal/domain"
)

// Reconciler repairs raw oracle text into exactly three well-formed
// recommendations. It is total: it never fails, whatever the input.
type Reconciler interface {
	Reconcile(raw string) []domain.Recommendation
}

// Ranker orders recommendations by lexical match against the dataset.
type Ranker interface {
	Rank(recs []domain.Recommendation, userSkills []string, jobs []domain.JobRecord) []domain.Recommendation
}

// PromptFunc renders a profile and the reference dataset into oracle prompt text.
type PromptFunc func(domain.UserProfile, []domain.JobRecord) (string, error)

// RecommendService runs the full pipeline: summarize, prompt, complete,
// reconcile, rank. The reference dataset is injected once at construction
// and never mutated, so the service is safe for concurrent requests.
type RecommendService struct {
	oracle      domain.OracleClient
	reconciler  Reconciler
	ranker      Ranker
	buildPrompt PromptFunc
	jobs        []domain.JobRecord
}

// NewRecommendService constructs a RecommendService with its collaborators.
func NewRecommendService(oracle domain.OracleClient, rec Reconciler, ranker Ranker, buildPrompt PromptFunc, jobs []domain.JobRecord) RecommendService {
	return RecommendService{
		oracle:      oracle,
		reconciler:  rec,
		ranker:      ranker,
		buildPrompt: buildPrompt,
		jobs:        jobs,
	}
}

// Result is the adapter-facing DTO for one completed recommendation run.
type Result struct {
	Recommendations    []domain.Recommendation
	PersonalitySummary map[domain.Trait]float64
}

// Recommend executes the pipeline for one submission. The only errors it
// can return are internal (prompt rendering, an oracle implementation that
// violates its degrade-don't-fail contract); oracle noise is absorbed by
// reconciliation and ranking.
func (s RecommendService) Recommend(ctx context.Context, raw RawSubmission) (Result, error) {
	profile := SummarizeProfile(raw)

	prompt, err := s.buildPrompt(profile, s.jobs)
	if err != nil {
		return Result{}, fmt.Errorf("%w: render prompt: %v", domain.ErrInternal, err)
	}

	rawText, err := s.oracle.Complete(ctx, prompt)
	if err != nil {
		return Result{}, fmt.Errorf("%w: oracle: %v", domain.ErrInternal, err)
	}

	recs := s.reconciler.Reconcile(rawText)
	recs = s.ranker.Rank(recs, profile.Skills, s.jobs)

	slog.Debug("recommendation pipeline completed",
		slog.Int("skills", len(profile.Skills)),
		slog.Int("recommendations", len(recs)))

	return Result{Recommendations: recs, PersonalitySummary: profile.Personality}, nil
}
