package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Token weights for scoring
const (
	weightFood        = 3.0 // milk, chicken, bread
	weightDescriptive = 2.0 // whole, skim, organic
	weightDefault     = 1.0
	fuzzyWeightFactor = 0.8
)

const (
	substringMatchBonus = 10.0
	maxScore            = 100.0
)

// foodTerms are high-importance food keywords
var foodTerms = map[string]bool{
	// proteins
	"chicken": true, "beef": true, "pork": true, "fish": true, "salmon": true,
	"turkey": true, "lamb": true, "shrimp": true, "tuna": true, "bacon": true,
	"sausage": true, "steak": true, "ham": true, "crab": true, "tofu": true,
	// dairy
	"milk": true, "cheese": true, "yogurt": true, "butter": true, "cream": true,
	"eggs": true, "egg": true, "cheddar": true, "mozzarella": true, "parmesan": true,
	// grains
	"bread": true, "rice": true, "pasta": true, "cereal": true, "oats": true,
	"wheat": true, "flour": true, "noodles": true, "tortilla": true, "bagel": true,
	// produce
	"apple": true, "banana": true, "orange": true, "lettuce": true, "tomato": true,
	"potato": true, "onion": true, "carrot": true, "broccoli": true, "spinach": true,
	"strawberry": true, "blueberry": true, "grape": true, "lemon": true, "lime": true,
	"avocado": true, "cucumber": true, "pepper": true, "corn": true, "beans": true,
	// beverages
	"juice": true, "soda": true, "cola": true, "coffee": true, "tea": true,
	"water": true, "lemonade": true, "smoothie": true,
	// snacks
	"chips": true, "crackers": true, "cookies": true, "candy": true, "chocolate": true,
	"cake": true, "pie": true, "popcorn": true,
	// condiments
	"ketchup": true, "mustard": true, "mayonnaise": true, "sauce": true,
	"salsa": true, "dressing": true, "syrup": true, "honey": true, "jam": true,
	// prepared
	"pizza": true, "burger": true, "sandwich": true, "soup": true, "salad": true,
}

// descriptiveTerms are medium-importance qualifiers
var descriptiveTerms = map[string]bool{
	"whole": true, "skim": true, "reduced": true, "fat": true, "low": true,
	"nonfat": true, "organic": true, "natural": true, "fresh": true, "frozen": true,
	"canned": true, "dried": true, "raw": true, "cooked": true, "grilled": true,
	"baked": true, "fried": true, "roasted": true, "smoked": true,
	"vanilla": true, "plain": true, "flavored": true, "original": true,
	"sweet": true, "spicy": true, "mild": true, "lite": true, "light": true, "diet": true,
	"white": true, "brown": true, "red": true, "green": true, "unsweetened": true,
	"salted": true, "unsalted": true, "boneless": true, "skinless": true, "lean": true,
}

// extendedStopWords are dropped during tokenization
var extendedStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"oz": true, "fl": true, "lb": true, "lbs": true, "ml": true,
	"gallon": true, "quart": true, "pint": true, "liter": true, "liters": true,
	"gram": true, "grams": true, "kg": true, "ounce": true, "ounces": true,
	"pack": true, "count": true, "ct": true, "pk": true,
	"size": true, "value": true, "each": true, "per": true,
	"serving": true, "servings": true, "approx": true, "ns": true, "nfs": true,
}

// RankerConfig holds configuration for the candidate ranker
type RankerConfig struct {
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
}

// CandidateRanker picks the provider candidate whose name best covers the query
type CandidateRanker struct {
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	logger              *zap.Logger
}

// NewCandidateRanker creates a ranker with the given configuration
func NewCandidateRanker(config RankerConfig, logger *zap.Logger) *CandidateRanker {
	if logger == nil {
		logger = zap.NewNop()
	}
	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1
	}
	return &CandidateRanker{
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
		logger:              logger,
	}
}

// Best returns the index of the highest-scoring candidate name, or -1 when
// names is empty. Ties keep provider order.
func (r *CandidateRanker) Best(query string, names []string) int {
	best := -1
	highest := -1.0
	for i, name := range names {
		score := r.Score(query, name)
		if score > highest {
			highest = score
			best = i
		}
	}
	if best >= 0 {
		r.logger.Debug("ranked candidates",
			zap.String("query", query),
			zap.String("best", names[best]),
			zap.Float64("score", highest),
			zap.Int("candidates", len(names)))
	}
	return best
}

// Score rates how well a candidate name matches the query on a 0-100 scale.
// Query coverage is weighted by token importance and dominates; candidate
// coverage and a substring bonus break ties between similar candidates.
func (r *CandidateRanker) Score(query, candidate string) float64 {
	queryTokens := tokenize(query)
	candidateTokens := tokenize(candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	queryCoverage := r.weightedCoverage(queryTokens, candidateTokens)

	candidateMatched, _ := findIntersection(candidateTokens, queryTokens)
	candidateCoverage := float64(candidateMatched) / float64(len(candidateTokens))

	score := (queryCoverage*0.75 + candidateCoverage*0.25) * (maxScore - substringMatchBonus)

	queryLower := strings.Join(queryTokens, " ")
	candidateLower := strings.Join(candidateTokens, " ")
	if len(queryLower) > 3 && (strings.Contains(candidateLower, queryLower) || strings.Contains(queryLower, candidateLower)) {
		score += substringMatchBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// weightedCoverage is the weighted share of query tokens found in the candidate
func (r *CandidateRanker) weightedCoverage(queryTokens, candidateTokens []string) float64 {
	candidateSet := make(map[string]bool, len(candidateTokens))
	for _, t := range candidateTokens {
		candidateSet[t] = true
	}

	var total, matched float64
	for _, token := range queryTokens {
		w := tokenWeight(token)
		total += w
		if candidateSet[token] {
			matched += w
			continue
		}
		if !r.enableFuzzyMatching {
			continue
		}
		for _, ct := range candidateTokens {
			if fuzzyTokenMatch(token, ct, r.fuzzyEditDistance) {
				matched += w * fuzzyWeightFactor
				break
			}
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

func tokenWeight(token string) float64 {
	switch {
	case foodTerms[token]:
		return weightFood
	case descriptiveTerms[token]:
		return weightDescriptive
	default:
		return weightDefault
	}
}

// tokenize splits a string into lowercase tokens, dropping punctuation,
// stop words, single characters and pure numbers
func tokenize(s string) []string {
	words := strings.Fields(punctuationRegex.ReplaceAllString(strings.ToLower(s), " "))

	var tokens []string
	for _, word := range words {
		if len(word) <= 1 || extendedStopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch reports whether two tokens are within threshold edits.
// Short tokens never fuzzy-match.
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}
	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}
	return levenshteinDistance(token1, token2) <= threshold
}

func levenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// findIntersection returns the count and list of distinct tokens2 entries present in tokens1
func findIntersection(tokens1, tokens2 []string) (int, []string) {
	set := make(map[string]bool, len(tokens1))
	for _, t := range tokens1 {
		set[t] = true
	}

	var matched []string
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			matched = append(matched, t)
			seen[t] = true
		}
	}
	return len(matched), matched
}
