// Package domain holds the core entities and ports of the service.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal error")
)

// Trait is one of the five OCEAN personality dimensions.
type Trait string

const (
	TraitOpenness          Trait = "Openness"
	TraitConscientiousness Trait = "Conscientiousness"
	TraitExtraversion      Trait = "Extraversion"
	TraitAgreeableness     Trait = "Agreeableness"
	TraitNeuroticism       Trait = "Neuroticism"
)

// Traits lists all traits in canonical order.
var Traits = []Trait{
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitNeuroticism,
}

// UserProfile is the structured summary of one questionnaire submission.
// Built fresh per request, immutable once built, never persisted.
type UserProfile struct {
	Personality     map[Trait]float64 `json:"personality"`
	Skills          []string          `json:"skills"`
	Interests       []string          `json:"interests"`
	OpenEndedThemes string            `json:"open_ended_themes"`
	Preferences     map[string]string `json:"preferences"`
}

// JobRecord is one entry of the reference career dataset.
// The dataset is loaded once at startup and is read-only for the
// process lifetime, so it is safe to share across requests.
type JobRecord struct {
	Career     string   `json:"career"`
	CoreSkills []string `json:"core_skills"`
}

// Recommendation is a single career suggestion returned to the caller.
// Invariant: every response carries exactly three of these, each with all
// four text fields non-empty and a numeric match score in [0, 200].
type Recommendation struct {
	Career       string  `json:"career"`
	FitReason    string  `json:"fit_reason"`
	AIImpact     string  `json:"ai_impact"`
	LearningPath string  `json:"learning_path"`
	MatchScore   float64 `json:"match_score"`
}

// OracleClient (port)
//
// Complete sends the rendered prompt to the generative oracle and returns
// its raw text output. Implementations absorb transport failures: after
// retries are exhausted they return a fixed fallback payload instead of
// an error, so callers never see oracle unreliability.
type OracleClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
