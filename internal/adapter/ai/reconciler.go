package ai

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/skillsync/skillsync/internal/adapter/observability"
	"github.com/skillsync/skillsync/internal/domain"
)

// RequiredRecommendations is the fixed cardinality of every result set.
const RequiredRecommendations = 3

const (
	reasonParseError = "Fallback: Error parsing LLM response"
	reasonNoJSON     = "Fallback: No JSON found in response"
)

// Reconciler turns raw oracle text into exactly three well-formed
// recommendations. It is a layered recovery pipeline: strip wrappers,
// parse, repair cardinality and fields, salvage a JSON region if the
// clean parse fails, and finally give up to a fixed fallback set.
// Every path terminates in three complete candidates; Reconcile never
// returns an error.
type Reconciler struct{}

// NewReconciler creates a new reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

type parseKind int

const (
	// parseSucceeded: the stripped text was a valid envelope with at least
	// one recommendation.
	parseSucceeded parseKind = iota
	// parseSalvaged: the clean parse failed but a brace-delimited region of
	// the text decoded as an envelope.
	parseSalvaged
	// parseFailed: a JSON region was found but nothing decoded.
	parseFailed
	// parseNoJSON: the text contains no '{' at all.
	parseNoJSON
)

// parseOutcome is the tagged variant threaded through the recovery chain.
type parseOutcome struct {
	kind parseKind
	recs []rawRecommendation
}

// rawRecommendation tolerates the shapes the oracle actually produces:
// learning_path arrives as either a string or a list of steps.
type rawRecommendation struct {
	Career       string          `json:"career"`
	FitReason    string          `json:"fit_reason"`
	AIImpact     string          `json:"ai_impact"`
	LearningPath json.RawMessage `json:"learning_path"`
}

type oracleEnvelope struct {
	Recommendations []rawRecommendation `json:"recommendations"`
}

// Reconcile repairs raw oracle output into exactly RequiredRecommendations
// candidates with every text field populated.
func (r *Reconciler) Reconcile(raw string) []domain.Recommendation {
	out := r.parse(stripWrapper(raw))
	switch out.kind {
	case parseSucceeded:
		observability.ReconcileOutcomesTotal.WithLabelValues("parsed").Inc()
		// Clean parses pad with the full fallback texts.
		return repairCount(repairFields(out.recs), FallbackPool())
	case parseSalvaged:
		observability.ReconcileOutcomesTotal.WithLabelValues("salvaged").Inc()
		// Salvaged parses pad with entries whose fit_reason names the failure.
		return repairCount(repairFields(out.recs), fallbackWithReason(reasonParseError))
	case parseNoJSON:
		slog.Warn("no JSON found in oracle response", slog.Int("response_length", len(raw)))
		observability.ReconcileOutcomesTotal.WithLabelValues("fallback").Inc()
		return fallbackWithReason(reasonNoJSON)
	default:
		slog.Warn("oracle response unparseable after salvage", slog.Int("response_length", len(raw)))
		observability.ReconcileOutcomesTotal.WithLabelValues("fallback").Inc()
		return fallbackWithReason(reasonParseError)
	}
}

// parse attempts the clean parse, then the salvage parse.
func (r *Reconciler) parse(cleaned string) parseOutcome {
	var env oracleEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err == nil && len(env.Recommendations) > 0 {
		return parseOutcome{kind: parseSucceeded, recs: env.Recommendations}
	}

	region, ok := extractJSONRegion(cleaned)
	if !ok {
		return parseOutcome{kind: parseNoJSON}
	}
	env = oracleEnvelope{}
	if err := json.Unmarshal([]byte(region), &env); err != nil {
		return parseOutcome{kind: parseFailed}
	}
	// The salvage layer accepts an empty list; count repair fills it.
	return parseOutcome{kind: parseSalvaged, recs: env.Recommendations}
}

var labelLineRe = regexp.MustCompile(`^[\w \t:]+\n`)

// stripWrapper removes markdown code fences and a leading label line
// (the oracle routinely prepends something like "Recommendations:" before
// the JSON body).
func stripWrapper(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		s = strings.TrimSpace(labelLineRe.ReplaceAllString(s, ""))
	}
	return s
}

// extractJSONRegion returns the first balanced {...} region of s.
// Reports false when s contains no '{'. An unbalanced region is returned
// as-is from the first brace; the caller's parse decides its fate.
func extractJSONRegion(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return s[start:], true
}

// repairFields fills every absent or empty required field with a
// deterministic placeholder and normalizes learning_path to one string.
func repairFields(recs []rawRecommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(recs))
	for _, rr := range recs {
		rec := domain.Recommendation{
			Career:       rr.Career,
			FitReason:    rr.FitReason,
			AIImpact:     rr.AIImpact,
			LearningPath: learningPathText(rr.LearningPath),
		}
		if rec.Career == "" {
			rec.Career = "Fallback: Missing career"
		}
		if rec.FitReason == "" {
			rec.FitReason = "Fallback: Missing fit_reason"
		}
		if rec.AIImpact == "" {
			rec.AIImpact = "Fallback: Missing ai_impact"
		}
		if rec.LearningPath == "" {
			rec.LearningPath = "Fallback: Missing learning_path"
		}
		out = append(out, rec)
	}
	return out
}

// learningPathText accepts a JSON string or a list of steps; a list is
// joined with ", ". Anything else normalizes to empty and gets the
// placeholder upstream.
func learningPathText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var steps []string
	if err := json.Unmarshal(raw, &steps); err == nil {
		return strings.Join(steps, ", ")
	}
	return ""
}

// repairCount forces the set to exactly RequiredRecommendations entries.
// Short sets are padded from pool, skipping careers already present by
// exact name; long sets keep the first three. Wrong cardinality is typical
// oracle noise, so it is logged rather than treated as an error.
func repairCount(recs []domain.Recommendation, pool []domain.Recommendation) []domain.Recommendation {
	if len(recs) == RequiredRecommendations {
		return recs
	}
	slog.Warn("oracle returned wrong recommendation count",
		slog.Int("got", len(recs)),
		slog.Int("want", RequiredRecommendations))
	if len(recs) > RequiredRecommendations {
		return recs[:RequiredRecommendations]
	}
	present := make(map[string]bool, len(recs))
	for _, rec := range recs {
		present[rec.Career] = true
	}
	for _, fb := range pool {
		if len(recs) >= RequiredRecommendations {
			break
		}
		if present[fb.Career] {
			continue
		}
		recs = append(recs, fb)
		present[fb.Career] = true
	}
	return recs
}
