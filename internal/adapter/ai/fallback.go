// Package ai repairs and normalizes raw oracle output into well-formed
// recommendation sets.
package ai

import (
	"encoding/json"

	"github.com/skillsync/skillsync/internal/domain"
)

// fallbackPool is the fixed pool of known-good recommendations. It backs
// three distinct failure paths: padding short result sets, replacing an
// unparseable response, and standing in for the oracle when every transport
// attempt fails. Careers here must exist in the reference dataset so the
// ranker can still resolve and score them.
var fallbackPool = []domain.Recommendation{
	{
		Career:       "AI Product Managers",
		FitReason:    "Fallback: High openness and problem-solving skills align with AI-driven roles.",
		AIImpact:     "AI automates data tasks, but human vision is key.",
		LearningPath: "Learn product management, AI ethics, data literacy, leadership skills",
	},
	{
		Career:       "UX Designers",
		FitReason:    "Fallback: Creativity and empathy suit user-centric design.",
		AIImpact:     "AI enhances prototyping, but human empathy drives design.",
		LearningPath: "Study UX design, prototyping tools, user research, AI-UX integration",
	},
	{
		Career:       "Data Ethicist",
		FitReason:    "Fallback: High agreeableness fits roles ensuring ethical AI use.",
		AIImpact:     "AI requires ethical oversight, but human judgment is key.",
		LearningPath: "Study ethics, data governance, AI principles, communication skills",
	},
}

// FallbackPool returns a copy of the canonical fallback recommendations.
func FallbackPool() []domain.Recommendation {
	out := make([]domain.Recommendation, len(fallbackPool))
	copy(out, fallbackPool)
	return out
}

// fallbackWithReason returns the pool with every fit_reason replaced, used
// when the whole response had to be discarded and the reason is the only
// honest thing left to say.
func fallbackWithReason(reason string) []domain.Recommendation {
	out := FallbackPool()
	for i := range out {
		out[i].FitReason = reason
	}
	return out
}

// FallbackPayload renders the canonical pool as the oracle wire format.
// The oracle client returns this payload after exhausting its retries so
// the rest of the pipeline never needs a special path for a dead oracle.
func FallbackPayload() string {
	type wireRec struct {
		Career       string `json:"career"`
		FitReason    string `json:"fit_reason"`
		AIImpact     string `json:"ai_impact"`
		LearningPath string `json:"learning_path"`
	}
	recs := make([]wireRec, 0, len(fallbackPool))
	for _, r := range fallbackPool {
		recs = append(recs, wireRec{Career: r.Career, FitReason: r.FitReason, AIImpact: r.AIImpact, LearningPath: r.LearningPath})
	}
	b, _ := json.Marshal(map[string]any{"recommendations": recs})
	return string(b)
}
