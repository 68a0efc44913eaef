package ai

import (
	"encoding/json"
	"fmt"

	"github.com/skillsync/skillsync/internal/domain"
)

// promptTemplate instructs the oracle to pick exactly three careers from the
// dataset and answer in strict JSON. The explicit output example and the
// "only valid JSON" clauses reduce, but do not eliminate, malformed output;
// the reconciler handles the rest.
const promptTemplate = `
You are an AI career advisor specializing in future-proof careers that AI will empower rather than replace.

User profile:
%s

Dataset of jobs (with skills, personality fits, and AI-resilience info):
%s

Task:
1. Analyze the user's personality (OCEAN scores), skills, interests, and preferences.
2. Select exactly 3 careers from the dataset that blend human creativity, empathy, and technology. Use career names exactly as they appear in the dataset (e.g., 'AI Product Managers', 'UX Designers', 'Data Ethicist').
3. For each career, provide:
   - Why it fits the user's personality, skills, and interests (1-2 sentences).
   - How AI enhances the role (1 sentence).
   - Recommended learning roadmap (a single string with 3-5 concise steps, separated by commas).
4. Return *only* valid JSON, with no extra text, markdown, code blocks, or comments. Example:
{
  "recommendations": [
    {
      "career": "AI Product Managers",
      "fit_reason": "Your high openness and problem-solving skills align with leading AI-driven projects.",
      "ai_impact": "AI automates data analysis, but human vision is key.",
      "learning_path": "Learn product management, AI ethics, data literacy, leadership skills"
    },
    {...},
    {...}
  ]
}
Output must be strictly parseable JSON without errors. Do not include any text before or after the JSON.
`

// BuildPrompt renders the instructional template with the user profile and
// the reference dataset, both as indented JSON.
func BuildPrompt(profile domain.UserProfile, jobs []domain.JobRecord) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("op=ai.BuildPrompt: marshal profile: %w", err)
	}
	jobsJSON, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("op=ai.BuildPrompt: marshal dataset: %w", err)
	}
	return fmt.Sprintf(promptTemplate, profileJSON, jobsJSON), nil
}
