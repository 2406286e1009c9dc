package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/basketrack/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// ScaleQuantity converts an ingredient quantity written for baseServings
// into the quantity needed for targetServings. Scaling is linear; no
// rounding happens here.
func ScaleQuantity(quantity float64, baseServings, targetServings int) (float64, error) {
	if baseServings <= 0 {
		return 0, fmt.Errorf("%w: recipe declares %d servings", domain.ErrInvalidServings, baseServings)
	}
	if targetServings <= 0 {
		return 0, fmt.Errorf("%w: requested %d servings", domain.ErrInvalidServings, targetServings)
	}
	return quantity * float64(targetServings) / float64(baseServings), nil
}

// normalizeTerm lowercases a name or search term and collapses
// whitespace so catalog comparisons are insensitive to formatting.
func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return multipleSpacesRegex.ReplaceAllString(s, " ")
}
