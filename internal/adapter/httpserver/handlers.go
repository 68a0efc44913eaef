package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/skillsync/skillsync/internal/adapter/observability"
	"github.com/skillsync/skillsync/internal/config"
	"github.com/skillsync/skillsync/internal/domain"
	"github.com/skillsync/skillsync/internal/usecase"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Server wires handlers with their dependencies.
type Server struct {
	Cfg       config.Config
	Recommend usecase.RecommendService
	Validate  *validator.Validate

	// DatasetSize reports how many job records were loaded; readiness
	// refuses traffic until the dataset is present.
	DatasetSize int
}

// NewServer constructs a Server with a ready validator.
func NewServer(cfg config.Config, svc usecase.RecommendService, datasetSize int) *Server {
	return &Server{
		Cfg:         cfg,
		Recommend:   svc,
		Validate:    validator.New(validator.WithRequiredStructEnabled()),
		DatasetSize: datasetSize,
	}
}

// recommendRequest is the transport shape of one questionnaire submission.
// Limits are generous; they exist to bound memory, not to police content.
type recommendRequest struct {
	PersonalityAnswers map[string]any    `json:"personality_answers" validate:"omitempty,max=200"`
	Skills             []string          `json:"skills" validate:"omitempty,max=100,dive,max=500"`
	Interests          []string          `json:"interests" validate:"omitempty,max=100,dive,max=500"`
	OpenEnded          []string          `json:"open_ended" validate:"omitempty,max=50,dive,max=5000"`
	Preferences        map[string]string `json:"preferences" validate:"omitempty,max=100"`
}

type recommendResponse struct {
	Recommendations    []domain.Recommendation  `json:"recommendations"`
	PersonalitySummary map[domain.Trait]float64 `json:"personality_summary"`
}

// RecommendHandler accepts a questionnaire submission and responds with
// exactly three ranked career recommendations. The pipeline degrades
// instead of failing: oracle trouble surfaces as fallback content in a
// 200 response, never as a 5xx.
func (s *Server) RecommendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := LoggerFrom(r)

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read body: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		if len(body) == 0 {
			writeError(w, r, fmt.Errorf("%w: no data provided", domain.ErrInvalidArgument), nil)
			return
		}
		// Only an absent body or a key-less object is rejected; a submission
		// whose fields are all empty still runs the pipeline and gets a
		// neutral profile.
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidArgument), nil)
			return
		}
		if len(fields) == 0 {
			writeError(w, r, fmt.Errorf("%w: no data provided", domain.ErrInvalidArgument), nil)
			return
		}
		var req recommendRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid JSON body", domain.ErrInvalidArgument), nil)
			return
		}
		if err := s.Validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			details := map[string]string{}
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					details[fe.Field()] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), details)
			return
		}

		result, err := s.Recommend.Recommend(r.Context(), usecase.RawSubmission{
			PersonalityAnswers: req.PersonalityAnswers,
			Skills:             req.Skills,
			Interests:          req.Interests,
			OpenEnded:          req.OpenEnded,
			Preferences:        req.Preferences,
		})
		if err != nil {
			lg.Error("recommendation pipeline failed", slog.Any("error", err))
			writeError(w, r, err, nil)
			return
		}

		scores := make([]float64, 0, len(result.Recommendations))
		for _, rec := range result.Recommendations {
			scores = append(scores, rec.MatchScore)
		}
		observability.ObserveMatchScores(scores)

		writeJSON(w, http.StatusOK, recommendResponse{
			Recommendations:    result.Recommendations,
			PersonalitySummary: result.PersonalitySummary,
		})
	}
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler reports whether the service can serve recommendations:
// the dataset must be loaded and oracle credentials configured.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		checks := map[string]string{
			"dataset": "ok",
			"oracle":  "ok",
		}
		ready := true
		if s.DatasetSize == 0 {
			checks["dataset"] = "empty"
			ready = false
		}
		if s.Cfg.OpenRouterAPIKey == "" {
			checks["oracle"] = "missing credentials"
			ready = false
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "unavailable"
		}
		writeJSON(w, status, map[string]any{"status": state, "checks": checks})
	}
}
