package usecase

import (
	"sort"

	"github.com/basketrack/backend/internal/domain"
)

// Match scores by retrieval tier. Search-term hits lose points for each
// of the ingredient's terms they miss, but never drop below the floor.
const (
	scoreExactName    = 100
	scoreSearchTerm   = 80
	scoreSubstitute   = 60
	scoreCategoryOnly = 30

	searchTermPenalty = 2
	searchTermFloor   = 50
)

// scoreCandidate assigns the match score for one retrieved candidate.
func scoreCandidate(rc RetrievedCandidate, totalTerms int) int {
	switch rc.reason {
	case domain.MatchExactName:
		return scoreExactName
	case domain.MatchSearchTerm:
		score := scoreSearchTerm - searchTermPenalty*(totalTerms-rc.matchedTerms)
		if score < searchTermFloor {
			score = searchTermFloor
		}
		return score
	case domain.MatchSubstitute:
		return scoreSubstitute
	case domain.MatchCategoryOnly:
		return scoreCategoryOnly
	default:
		return 0
	}
}

// sortMatches orders matches best first. Ties break on lower price,
// then higher stock, then product ID so equal inputs always rank the
// same way.
func sortMatches(matches []domain.ScoredMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.Candidate.SellingPrice != b.Candidate.SellingPrice {
			return a.Candidate.SellingPrice < b.Candidate.SellingPrice
		}
		if a.Candidate.CurrentStock != b.Candidate.CurrentStock {
			return a.Candidate.CurrentStock > b.Candidate.CurrentStock
		}
		return a.Candidate.ProductID.String() < b.Candidate.ProductID.String()
	})
}
