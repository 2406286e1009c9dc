package usecase

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basketrack/backend/internal/domain"
)

const defaultMaxCandidates = 20

// Fuzzy matching guards: short tokens produce false positives
const (
	fuzzyMinTokenLen   = 4
	fuzzyEditThreshold = 1
)

// RetrievedCandidate pairs a product with the lookup tier that produced
// it and, for search-term hits, how many of the ingredient's terms hit.
type RetrievedCandidate struct {
	candidate    domain.ProductCandidate
	reason       domain.MatchReason
	matchedTerms int
}

// Retriever collects product candidates for one ingredient through
// tiered catalog lookups: exact name, search terms, substitutes, and a
// category fallback when everything else comes up empty.
type Retriever struct {
	catalog       domain.Catalog
	maxCandidates int
	logger        *zap.Logger
}

// NewRetriever creates a retriever over the given catalog. A
// non-positive maxCandidates falls back to the default bound.
func NewRetriever(catalog domain.Catalog, maxCandidates int, logger *zap.Logger) *Retriever {
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{catalog: catalog, maxCandidates: maxCandidates, logger: logger}
}

// Retrieve runs the lookup tiers for the ingredient and returns
// deduplicated, purchasable candidates, earliest tier first. A product
// surfacing in several tiers keeps the first (strongest) reason.
func (r *Retriever) Retrieve(ctx context.Context, ing domain.RecipeIngredient) []RetrievedCandidate {
	var (
		out  []RetrievedCandidate
		seen = make(map[uuid.UUID]struct{})
	)

	add := func(c domain.ProductCandidate, reason domain.MatchReason, matchedTerms int) {
		if len(out) >= r.maxCandidates {
			return
		}
		if !c.Available || c.CurrentStock <= 0 {
			return
		}
		if _, dup := seen[c.ProductID]; dup {
			return
		}
		seen[c.ProductID] = struct{}{}
		out = append(out, RetrievedCandidate{candidate: c, reason: reason, matchedTerms: matchedTerms})
	}

	// Tier 1: exact product name
	name := normalizeTerm(ing.Name)
	for _, c := range r.find(ctx, name, "") {
		if strings.EqualFold(c.Name, ing.Name) {
			add(c, domain.MatchExactName, 0)
		}
	}

	// Tier 2: ingredient search terms
	terms := make([]string, 0, len(ing.SearchTerms))
	for _, t := range ing.SearchTerms {
		if t = normalizeTerm(t); t != "" {
			terms = append(terms, t)
		}
	}
	for _, term := range terms {
		if len(out) >= r.maxCandidates {
			break
		}
		for _, c := range r.find(ctx, term, "") {
			if matched := countTermHits(c, terms); matched > 0 {
				add(c, domain.MatchSearchTerm, matched)
			}
		}
	}

	// Tier 3: substitutes
	for _, sub := range ing.Substitutes {
		if len(out) >= r.maxCandidates {
			break
		}
		sub = normalizeTerm(sub)
		if sub == "" {
			continue
		}
		for _, c := range r.find(ctx, sub, "") {
			if termMatches(c, sub) {
				add(c, domain.MatchSubstitute, 0)
			}
		}
	}

	// Tier 4: category fallback, only when tiers 1-3 produced nothing
	if len(out) == 0 && ing.Category != "" {
		for _, c := range r.find(ctx, "", ing.Category) {
			if strings.EqualFold(c.Category, ing.Category) {
				add(c, domain.MatchCategoryOnly, 0)
			}
		}
	}

	return out
}

// find wraps one catalog call; a failed lookup degrades to zero
// candidates so the remaining tiers still run.
func (r *Retriever) find(ctx context.Context, nameOrTerm, category string) []domain.ProductCandidate {
	if nameOrTerm == "" && category == "" {
		return nil
	}
	candidates, err := r.catalog.FindCandidates(ctx, nameOrTerm, category)
	if err != nil {
		r.logger.Warn("catalog lookup failed",
			zap.String("term", nameOrTerm),
			zap.String("category", category),
			zap.Error(err))
		return nil
	}
	return candidates
}

// countTermHits counts how many of the ingredient's search terms hit
// the candidate's name or category.
func countTermHits(c domain.ProductCandidate, terms []string) int {
	n := 0
	for _, t := range terms {
		if termMatches(c, t) {
			n++
		}
	}
	return n
}

// termMatches reports whether a term hits the candidate by substring
// or by a name token within the fuzzy edit threshold.
func termMatches(c domain.ProductCandidate, term string) bool {
	name := strings.ToLower(c.Name)
	category := strings.ToLower(c.Category)
	if strings.Contains(name, term) || strings.Contains(category, term) {
		return true
	}
	for _, tok := range strings.Fields(name) {
		if fuzzyTokenMatch(tok, term) {
			return true
		}
	}
	return false
}

// fuzzyTokenMatch checks if two tokens are similar within the edit
// distance threshold. Tokens under 4 chars never match fuzzily.
func fuzzyTokenMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < fuzzyMinTokenLen || len(b) < fuzzyMinTokenLen {
		return false
	}
	lenDiff := len(a) - len(b)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > fuzzyEditThreshold {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= fuzzyEditThreshold
}
