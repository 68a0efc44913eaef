// Package usecase contains application business logic services.
package usecase

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/skillsync/skillsync/internal/domain"
	"github.com/skillsync/skillsync/pkg/textx"
)

// RawSubmission is one questionnaire submission as received from the API.
// Every field is optional; missing fields degrade to neutral defaults
// rather than errors.
type RawSubmission struct {
	PersonalityAnswers map[string]any    `json:"personality_answers"`
	Skills             []string          `json:"skills"`
	Interests          []string          `json:"interests"`
	OpenEnded          []string          `json:"open_ended"`
	Preferences        map[string]string `json:"preferences"`
}

// traitQuestions maps each trait to its four questionnaire item numbers.
var traitQuestions = map[domain.Trait][4]int{
	domain.TraitOpenness:          {1, 2, 3, 4},
	domain.TraitConscientiousness: {5, 6, 7, 8},
	domain.TraitExtraversion:      {9, 10, 11, 12},
	domain.TraitAgreeableness:     {13, 14, 15, 16},
	domain.TraitNeuroticism:       {17, 18, 19, 20},
}

// reverseQuestions are reverse-keyed items scored as 11 - answer.
var reverseQuestions = map[int]bool{4: true, 8: true, 12: true, 16: true, 20: true}

const neutralAnswer = 5

// SummarizeProfile turns a raw submission into a UserProfile. Pure function:
// no side effects, total over any input. Malformed or absent individual
// answers fall back to the neutral midpoint instead of failing the request.
func SummarizeProfile(raw RawSubmission) domain.UserProfile {
	return domain.UserProfile{
		Personality:     computePersonalityScores(raw.PersonalityAnswers),
		Skills:          textx.SanitizeAll(raw.Skills),
		Interests:       textx.SanitizeAll(raw.Interests),
		OpenEndedThemes: textx.SanitizeText(strings.Join(raw.OpenEnded, " ")),
		Preferences:     raw.Preferences,
	}
}

// computePersonalityScores averages the four answers behind each trait,
// applying the reverse transform where the item is reverse-keyed.
func computePersonalityScores(answers map[string]any) map[domain.Trait]float64 {
	scores := make(map[domain.Trait]float64, len(traitQuestions))
	for trait, questions := range traitQuestions {
		var sum float64
		for _, q := range questions {
			v := answerValue(answers, q)
			if reverseQuestions[q] {
				v = 11 - v
			}
			sum += v
		}
		scores[trait] = sum / float64(len(questions))
	}
	return scores
}

// answerValue looks up the answer for question q under its string key.
// JSON numbers, json.Number, and numeric strings are all accepted since the
// oracle-facing pipeline must never fail on sloppy client input.
func answerValue(answers map[string]any, q int) float64 {
	v, ok := answers[strconv.Itoa(q)]
	if !ok {
		return neutralAnswer
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return neutralAnswer
}
