// Package ranking scores recommendations against the reference dataset
// with a fixed TF-IDF lexical similarity model.
//
// The model is deliberately literal: one unigram vector space over skill
// tokens, a small hand-written synonym table, and suffix-based plural
// stripping for career-name resolution. It is cheap, deterministic, and
// explainable, which is the point — the oracle has no reliable way to
// self-report match quality.
package ranking

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"log/slog"

	"github.com/skillsync/skillsync/internal/domain"
)

// skillSynonyms maps a skill to one additional term included alongside it.
// Expansion appends; it never replaces the original skill.
var skillSynonyms = map[string]string{
	"problem-solving": "critical thinking",
	"communication":   "speaking",
	"design thinking": "creativity",
}

// boostFactor doubles the scaled similarity on direct token overlap.
// Scores are intentionally not capped at 100, so the final range is 0-200.
const boostFactor = 2.0

// Ranker computes match scores and orders recommendations by them.
// It holds no mutable state; one instance is safe for concurrent use.
type Ranker struct{}

// NewRanker creates a new ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank attaches a match score to every recommendation and stable-sorts the
// set by score descending, so equal scores keep their oracle-given order.
// With no user skills there is nothing to compare against and the input is
// returned unchanged.
func (r *Ranker) Rank(recs []domain.Recommendation, userSkills []string, jobs []domain.JobRecord) []domain.Recommendation {
	if len(userSkills) == 0 {
		return recs
	}

	userText := expandSkills(userSkills)

	jobTexts := make([]string, len(jobs))
	careerIndex := make(map[string]int, len(jobs))
	for i, job := range jobs {
		jobTexts[i] = expandSkills(job.CoreSkills)
		careerIndex[stripPlural(strings.ToLower(job.Career))] = i
	}

	space := newVectorSpace(append([]string{userText}, jobTexts...))
	userVec := space.vector(0)

	out := make([]domain.Recommendation, len(recs))
	copy(out, recs)
	for i := range out {
		idx, ok := careerIndex[stripPlural(strings.ToLower(out[i].Career))]
		if !ok {
			slog.Warn("career not found in reference dataset", slog.String("career", out[i].Career))
			out[i].MatchScore = 0
			continue
		}
		sim := cosine(userVec, space.vector(idx+1))
		score := sim * 100
		if hasOverlap(userText, userSkills, jobTexts[idx]) {
			score *= boostFactor
		}
		out[i].MatchScore = math.Round(score*100) / 100
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].MatchScore > out[b].MatchScore })
	return out
}

// expandSkills lowercases skills, appends synonym terms, and joins the
// result into one document.
func expandSkills(skills []string) string {
	expanded := make([]string, 0, len(skills)*2)
	for _, s := range skills {
		s = strings.ToLower(s)
		expanded = append(expanded, s)
		if syn, ok := skillSynonyms[s]; ok {
			expanded = append(expanded, syn)
		}
	}
	return strings.Join(expanded, " ")
}

// stripPlural removes a trailing "es", else a trailing "s". A literal
// suffix rule, not stemming: fidelity to the fixed rule set matters more
// than linguistic correctness.
func stripPlural(career string) string {
	if strings.HasSuffix(career, "es") {
		return career[:len(career)-2]
	}
	if strings.HasSuffix(career, "s") {
		return career[:len(career)-1]
	}
	return career
}

// hasOverlap reports a direct or synonym-mapped token overlap between the
// user's skill text and a job's skill tokens.
func hasOverlap(userText string, userSkills []string, jobText string) bool {
	jobTokens := strings.Fields(jobText)
	for _, tok := range jobTokens {
		if strings.Contains(userText, tok) {
			return true
		}
	}
	for _, skill := range userSkills {
		syn, ok := skillSynonyms[strings.ToLower(skill)]
		if !ok {
			continue
		}
		for _, tok := range jobTokens {
			if tok == syn {
				return true
			}
		}
	}
	return false
}

// wordRe extracts unigram tokens of two or more word characters.
var wordRe = regexp.MustCompile(`\w\w+`)

// vectorSpace is a TF-IDF vector space with smooth IDF and L2-normalized
// vectors, so cosine similarity reduces to a dot product.
type vectorSpace struct {
	vocab   map[string]int
	idf     []float64
	vectors [][]float64
}

func newVectorSpace(docs []string) *vectorSpace {
	vs := &vectorSpace{vocab: make(map[string]int)}

	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokenized[i] = wordRe.FindAllString(doc, -1)
		for _, tok := range tokenized[i] {
			if _, ok := vs.vocab[tok]; !ok {
				vs.vocab[tok] = len(vs.vocab)
			}
		}
	}

	df := make([]int, len(vs.vocab))
	for _, toks := range tokenized {
		seen := make(map[int]bool, len(toks))
		for _, tok := range toks {
			seen[vs.vocab[tok]] = true
		}
		for idx := range seen {
			df[idx]++
		}
	}

	n := float64(len(docs))
	vs.idf = make([]float64, len(vs.vocab))
	for idx, d := range df {
		// smooth idf: ln((1+n)/(1+df)) + 1
		vs.idf[idx] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vs.vectors = make([][]float64, len(docs))
	for i, toks := range tokenized {
		vec := make([]float64, len(vs.vocab))
		for _, tok := range toks {
			vec[vs.vocab[tok]]++
		}
		var norm float64
		for idx := range vec {
			vec[idx] *= vs.idf[idx]
			norm += vec[idx] * vec[idx]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vs.vectors[i] = vec
	}
	return vs
}

func (vs *vectorSpace) vector(i int) []float64 { return vs.vectors[i] }

// cosine of two L2-normalized vectors is their dot product.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
