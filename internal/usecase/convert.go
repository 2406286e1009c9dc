package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/basketrack/backend/internal/domain"
)

// unitDimension groups units that convert into each other exactly.
type unitDimension int

const (
	dimMass unitDimension = iota
	dimVolume
	dimCount
)

// unitDef places a unit on a dimension with its size in the dimension's
// base unit (gram, milliliter, piece).
type unitDef struct {
	dim    unitDimension
	factor float64
}

const (
	gramsPerPound = 453.59237

	// gramsPerPiece bridges count and mass when a recipe counts produce
	// ("2 pieces cauliflower") but sellers list by weight. A rough
	// average for market produce; every use is disclosed in the note.
	gramsPerPiece = 200.0
)

var unitTable = map[string]unitDef{
	"g":     {dimMass, 1},
	"kg":    {dimMass, 1000},
	"lb":    {dimMass, gramsPerPound},
	"ml":    {dimVolume, 1},
	"l":     {dimVolume, 1000},
	"piece": {dimCount, 1},
	"dozen": {dimCount, 12},
}

// unitAliases maps spellings seen in recipe and catalog data to the
// canonical names used by unitTable.
var unitAliases = map[string]string{
	"gram": "g", "grams": "g", "gm": "g", "gms": "g",
	"kilogram": "kg", "kilograms": "kg", "kgs": "kg",
	"pound": "lb", "pounds": "lb", "lbs": "lb",
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"liter": "l", "liters": "l", "litre": "l", "litres": "l", "ltr": "l",
	"pc": "piece", "pcs": "piece", "pieces": "piece", "unit": "piece", "units": "piece",
	"dozens": "dozen", "dz": "dozen",
}

// normalizeUnit lowercases a unit and resolves aliases to canonical names.
func normalizeUnit(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if canon, ok := unitAliases[u]; ok {
		return canon
	}
	return u
}

// Conversion is the purchase quantity for one candidate in its selling
// unit, plus how the quantity was obtained.
type Conversion struct {
	Quantity float64 // whole selling units, rounded up; <= 0 means not purchasable
	Outcome  domain.ConversionOutcome
	Note     string
}

// ConvertQuantity translates a scaled ingredient quantity into the
// product's selling unit and rounds it up to a whole purchasable amount.
// Unknown unit pairs fall back to a disclosed 1:1 assumption rather
// than failing the match.
func ConvertQuantity(scaled float64, ingredientUnit, productUnit string) Conversion {
	if scaled <= 0 {
		return Conversion{}
	}

	from := normalizeUnit(ingredientUnit)
	to := normalizeUnit(productUnit)

	if from == to {
		return Conversion{Quantity: roundUpUnits(scaled), Outcome: domain.ConversionNone}
	}

	src, okFrom := unitTable[from]
	dst, okTo := unitTable[to]

	var (
		converted float64
		outcome   domain.ConversionOutcome
		note      string
	)

	switch {
	case okFrom && okTo && src.dim == dst.dim:
		converted = scaled * src.factor / dst.factor
		outcome = domain.ConversionExact
		note = fmt.Sprintf("%s %s = %s %s", formatQty(scaled), from, formatQty(converted), to)

	case okFrom && okTo && src.dim == dimCount && dst.dim == dimMass:
		converted = scaled * src.factor * gramsPerPiece / dst.factor
		outcome = domain.ConversionApproximate
		note = fmt.Sprintf("%s %s = approx. %s %s (assuming %.0f g per piece)",
			formatQty(scaled), from, formatQty(converted), to, gramsPerPiece)

	case okFrom && okTo && src.dim == dimMass && dst.dim == dimCount:
		converted = scaled * src.factor / gramsPerPiece / dst.factor
		outcome = domain.ConversionApproximate
		note = fmt.Sprintf("%s %s = approx. %s %s (assuming %.0f g per piece)",
			formatQty(scaled), from, formatQty(converted), to, gramsPerPiece)

	default:
		converted = scaled
		outcome = domain.ConversionApproximate
		note = fmt.Sprintf("no conversion from %s to %s; assuming 1 %s per %s", from, to, to, from)
	}

	quantity := roundUpUnits(converted)
	if quantity > converted+1e-9 {
		note += fmt.Sprintf("; rounded up to %s %s", formatQty(quantity), to)
	}

	return Conversion{Quantity: quantity, Outcome: outcome, Note: note}
}

// roundUpUnits rounds to the next whole unit, tolerating float error
// just below a whole number.
func roundUpUnits(q float64) float64 {
	return math.Ceil(q - 1e-9)
}

// formatQty renders a quantity without trailing zeros.
func formatQty(q float64) string {
	return strconv.FormatFloat(math.Round(q*1000)/1000, 'f', -1, 64)
}
