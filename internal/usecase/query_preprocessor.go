package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// QueryPreprocessor turns free-text item names into provider search terms
type QueryPreprocessor struct {
	logger *zap.Logger
}

var (
	// "128 fl oz", "1.5 liter", "2 lb", "500g"
	sizeQuantityPattern = regexp.MustCompile(`\b\d+\.?\d*\s*(?:fl\s*oz|oz|ounces?|lbs?|pounds?|ml|liters?|litres?|l|gallons?|gal|quarts?|qt|pints?|pt|kg|grams?|g)\b`)

	// "12 pack", "pack of 6", "6-pack", "24 count", "6 ct", "4 cans"
	packCountPattern = regexp.MustCompile(`\b\d+[-\s]*(?:pack|pk|count|ct|cans?|bottles?|pouches?|bars?|pieces?|pcs?)\b|\bpack\s*of\s*\d+\b`)

	leadingQuantityPattern = regexp.MustCompile(`^\d+\.?\d*\s+`)
	nonWordPattern         = regexp.MustCompile(`[^a-z0-9\s]+`)
	multiSpacePattern      = regexp.MustCompile(`\s+`)
)

var queryNoiseWords = map[string]bool{
	// marketing
	"value": true, "family": true, "bonus": true, "new": true, "improved": true,
	"premium": true, "select": true, "quality": true, "best": true, "great": true,
	"delicious": true, "tasty": true, "favorite": true, "special": true,

	// size
	"size": true, "large": true, "medium": true, "small": true, "mini": true,
	"jumbo": true, "giant": true, "big": true, "single": true, "double": true,

	// packaging
	"package": true, "box": true, "bag": true, "bottle": true, "jar": true,
	"tub": true, "carton": true, "sleeve": true, "pouch": true, "container": true,

	// generic
	"item": true, "product": true, "brand": true, "some": true, "of": true,
	"the": true, "a": true, "an": true,
}

// maxQueryLength keeps provider URLs short
const maxQueryLength = 100

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{logger: logger}
}

// Normalize lowercases a name and strips sizes, pack counts, punctuation and
// noise words. The result is both the provider search term and the cache key
// component. If stripping removes everything, the lowercased and trimmed
// input is returned instead.
func (p *QueryPreprocessor) Normalize(name string) string {
	base := multiSpacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), " ")
	if base == "" {
		return ""
	}

	cleaned := strings.ReplaceAll(base, "&", " and ")
	cleaned = sizeQuantityPattern.ReplaceAllString(cleaned, " ")
	cleaned = packCountPattern.ReplaceAllString(cleaned, " ")
	cleaned = leadingQuantityPattern.ReplaceAllString(strings.TrimSpace(cleaned), "")
	cleaned = nonWordPattern.ReplaceAllString(cleaned, " ")
	cleaned = removeNoiseWords(cleaned)

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	if cleaned == "" {
		cleaned = base
	}

	p.logger.Debug("normalized query", zap.String("input", name), zap.String("output", cleaned))
	return cleaned
}

func removeNoiseWords(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, word := range words {
		if !queryNoiseWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
