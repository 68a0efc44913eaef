package usecase_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsync/skillsync/internal/domain"
	"github.com/skillsync/skillsync/internal/usecase"
)

func TestSummarizeProfile_EmptySubmissionIsNeutral(t *testing.T) {
	t.Parallel()
	p := usecase.SummarizeProfile(usecase.RawSubmission{})
	require.Len(t, p.Personality, 5)
	// Forward items default to 5; reverse items default to 11-5=6.
	// Each trait averages three forward and one reverse item.
	for trait, score := range p.Personality {
		assert.InDelta(t, 5.25, score, 0.001, "trait %s", trait)
	}
	assert.Empty(t, p.Skills)
	assert.Empty(t, p.Interests)
	assert.Empty(t, p.OpenEndedThemes)
}

func TestSummarizeProfile_ReverseItemsFlip(t *testing.T) {
	t.Parallel()
	// Openness is questions 1-4 with question 4 reverse-keyed.
	p := usecase.SummarizeProfile(usecase.RawSubmission{
		PersonalityAnswers: map[string]any{
			"1": 10.0, "2": 10.0, "3": 10.0, "4": 10.0,
		},
	})
	// (10 + 10 + 10 + (11-10)) / 4
	assert.InDelta(t, 7.75, p.Personality[domain.TraitOpenness], 0.001)
}

func TestSummarizeProfile_TraitQuestionGroups(t *testing.T) {
	t.Parallel()
	answers := map[string]any{}
	for q := 1; q <= 20; q++ {
		answers[strconv.Itoa(q)] = 1.0
	}
	p := usecase.SummarizeProfile(usecase.RawSubmission{PersonalityAnswers: answers})
	// All answers 1: three forward items score 1, the reverse item 11-1=10.
	for trait, score := range p.Personality {
		assert.InDelta(t, 3.25, score, 0.001, "trait %s", trait)
	}
}

func TestSummarizeProfile_AnswerCoercion(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		val  any
		want float64 // expected openness given only question 1 set
	}{
		{"float", 8.0, (8 + 5 + 5 + 6) / 4.0},
		{"int", 8, (8 + 5 + 5 + 6) / 4.0},
		{"numeric string", "8", (8 + 5 + 5 + 6) / 4.0},
		{"padded string", " 8 ", (8 + 5 + 5 + 6) / 4.0},
		{"garbage string defaults", "loud", (5 + 5 + 5 + 6) / 4.0},
		{"bool defaults", true, (5 + 5 + 5 + 6) / 4.0},
		{"nil defaults", nil, (5 + 5 + 5 + 6) / 4.0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := usecase.SummarizeProfile(usecase.RawSubmission{
				PersonalityAnswers: map[string]any{"1": tc.val},
			})
			assert.InDelta(t, tc.want, p.Personality[domain.TraitOpenness], 0.001)
		})
	}
}

func TestSummarizeProfile_SanitizesFreeText(t *testing.T) {
	t.Parallel()
	p := usecase.SummarizeProfile(usecase.RawSubmission{
		Skills:    []string{"  python  ", "\x00", "sql\x07"},
		Interests: []string{"", "ai"},
		OpenEnded: []string{"I enjoy\x00 building things", "outdoors"},
	})
	assert.Equal(t, []string{"python", "sql"}, p.Skills)
	assert.Equal(t, []string{"ai"}, p.Interests)
	assert.Equal(t, "I enjoy building things outdoors", p.OpenEndedThemes)
}
