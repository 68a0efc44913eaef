package ranking_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsync/skillsync/internal/domain"
	"github.com/skillsync/skillsync/internal/ranking"
)

func rec(career string) domain.Recommendation {
	return domain.Recommendation{Career: career, FitReason: "r", AIImpact: "i", LearningPath: "p"}
}

func TestRank_NoUserSkillsIsNoOp(t *testing.T) {
	t.Parallel()
	recs := []domain.Recommendation{rec("UX Designers"), rec("Data Ethicist")}
	jobs := []domain.JobRecord{{Career: "UX Designers", CoreSkills: []string{"creativity"}}}
	out := ranking.NewRanker().Rank(recs, nil, jobs)
	assert.Equal(t, recs, out)
}

func TestRank_IdenticalSkillsScoreMaximum(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{{Career: "Testers", CoreSkills: []string{"python"}}}
	out := ranking.NewRanker().Rank([]domain.Recommendation{rec("Testers")}, []string{"python"}, jobs)
	require.Len(t, out, 1)
	// Perfect cosine scaled to 100, then doubled by the overlap boost.
	assert.InDelta(t, 200.0, out[0].MatchScore, 0.001)
}

func TestRank_SynonymExpansionBoosts(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{
		{Career: "Analysts", CoreSkills: []string{"critical thinking"}},
		{Career: "Welders", CoreSkills: []string{"metalwork"}},
	}
	recs := []domain.Recommendation{rec("Welders"), rec("Analysts")}
	out := ranking.NewRanker().Rank(recs, []string{"problem-solving"}, jobs)
	require.Len(t, out, 2)
	// "problem-solving" expands to "critical thinking", which both matches
	// the analyst vector and trips the overlap boost past 100.
	assert.Equal(t, "Analysts", out[0].Career)
	assert.Greater(t, out[0].MatchScore, 100.0)
	assert.Equal(t, "Welders", out[1].Career)
	assert.Equal(t, 0.0, out[1].MatchScore)
}

func TestRank_PluralCareersResolve(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{{Career: "UX Designers", CoreSkills: []string{"creativity"}}}
	out := ranking.NewRanker().Rank([]domain.Recommendation{rec("UX Designer")}, []string{"creativity"}, jobs)
	require.Len(t, out, 1)
	assert.Greater(t, out[0].MatchScore, 0.0)
}

func TestRank_UnknownCareerScoresZero(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{{Career: "UX Designers", CoreSkills: []string{"creativity"}}}
	out := ranking.NewRanker().Rank([]domain.Recommendation{rec("Basket Weaver")}, []string{"creativity"}, jobs)
	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].MatchScore)
}

func TestRank_SortsDescendingKeepingTies(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{
		{Career: "Matchers", CoreSkills: []string{"golang"}},
	}
	recs := []domain.Recommendation{rec("Unknown One"), rec("Matchers"), rec("Unknown Two")}
	out := ranking.NewRanker().Rank(recs, []string{"golang"}, jobs)
	require.Len(t, out, 3)
	assert.Equal(t, "Matchers", out[0].Career)
	// Zero-score entries keep their original relative order.
	assert.Equal(t, "Unknown One", out[1].Career)
	assert.Equal(t, "Unknown Two", out[2].Career)
}

func TestRank_ScoresRoundedToTwoDecimals(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{
		{Career: "Analysts", CoreSkills: []string{"sql", "statistics", "reporting"}},
		{Career: "Engineers", CoreSkills: []string{"sql", "golang"}},
	}
	recs := []domain.Recommendation{rec("Analysts"), rec("Engineers")}
	out := ranking.NewRanker().Rank(recs, []string{"sql", "statistics"}, jobs)
	for _, r := range out {
		assert.Equal(t, math.Round(r.MatchScore*100)/100, r.MatchScore)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	jobs := []domain.JobRecord{{Career: "Testers", CoreSkills: []string{"python"}}}
	recs := []domain.Recommendation{rec("Unknown"), rec("Testers")}
	_ = ranking.NewRanker().Rank(recs, []string{"python"}, jobs)
	assert.Equal(t, "Unknown", recs[0].Career)
	assert.Equal(t, 0.0, recs[0].MatchScore)
}
