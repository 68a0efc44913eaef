package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsync/skillsync/internal/domain"
	"github.com/skillsync/skillsync/internal/usecase"
)

type stubOracle struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubOracle) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

type stubReconciler struct{ recs []domain.Recommendation }

func (s stubReconciler) Reconcile(string) []domain.Recommendation { return s.recs }

type passRanker struct{}

func (passRanker) Rank(recs []domain.Recommendation, _ []string, _ []domain.JobRecord) []domain.Recommendation {
	return recs
}

func fixedPrompt(domain.UserProfile, []domain.JobRecord) (string, error) {
	return "prompt", nil
}

func TestRecommend_HappyPath(t *testing.T) {
	t.Parallel()
	want := []domain.Recommendation{{Career: "UX Designers"}, {Career: "Data Ethicist"}, {Career: "AI Product Managers"}}
	oracle := &stubOracle{reply: "raw oracle text"}
	svc := usecase.NewRecommendService(oracle, stubReconciler{recs: want}, passRanker{}, fixedPrompt, nil)

	res, err := svc.Recommend(context.Background(), usecase.RawSubmission{Skills: []string{"design"}})
	require.NoError(t, err)
	assert.Equal(t, want, res.Recommendations)
	require.Len(t, oracle.prompts, 1)
	assert.Equal(t, "prompt", oracle.prompts[0])
	// The personality summary is always present, even without answers.
	assert.Len(t, res.PersonalitySummary, 5)
}

func TestRecommend_PromptErrorIsInternal(t *testing.T) {
	t.Parallel()
	failing := func(domain.UserProfile, []domain.JobRecord) (string, error) {
		return "", errors.New("template broke")
	}
	svc := usecase.NewRecommendService(&stubOracle{}, stubReconciler{}, passRanker{}, failing, nil)
	_, err := svc.Recommend(context.Background(), usecase.RawSubmission{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestRecommend_OracleErrorIsInternal(t *testing.T) {
	t.Parallel()
	// A conforming oracle degrades to fallback text instead of erroring;
	// an error here means the client itself is broken.
	oracle := &stubOracle{err: errors.New("transport wired wrong")}
	svc := usecase.NewRecommendService(oracle, stubReconciler{}, passRanker{}, fixedPrompt, nil)
	_, err := svc.Recommend(context.Background(), usecase.RawSubmission{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
}
