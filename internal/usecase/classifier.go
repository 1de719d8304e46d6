package usecase

import (
	"regexp"
	"strings"

	"github.com/larder/backend/internal/domain"
)

// KeywordGroup maps a set of phrases to a shopping category. Phrases match
// on word boundaries, case-insensitively, with an optional plural suffix.
type KeywordGroup struct {
	Category domain.ShoppingCategory
	Phrases  []string
}

// NonFoodGroups are checked before any provider call. A hit short-circuits
// the lookup.
var NonFoodGroups = []KeywordGroup{
	{Category: domain.CategoryHousehold, Phrases: []string{
		"lysol", "clorox", "windex", "bleach", "detergent", "disinfectant", "cleaner",
		"cleaning", "dish soap", "dishwasher pod", "laundry", "fabric softener",
		"paper towel", "toilet paper", "tissue", "napkin", "trash bag", "garbage bag",
		"kitchen sponge", "scrub sponge", "aluminum foil", "plastic wrap", "ziploc", "air freshener",
	}},
	{Category: domain.CategoryPersonalCare, Phrases: []string{
		"diaper", "baby wipe", "wipe", "shampoo", "conditioner", "body wash",
		"toothpaste", "toothbrush", "dental floss", "mouthwash", "deodorant", "lotion",
		"razor blade", "disposable razor", "shaving cream", "sunscreen", "tampon", "cotton swab",
		"band aid", "bandage", "vitamin supplement", "ibuprofen", "acetaminophen",
	}},
	{Category: domain.CategoryPetSupplies, Phrases: []string{
		"dog food", "cat food", "pet food", "dog treat", "cat treat", "kibble",
		"cat litter", "kitty litter", "litter", "flea", "chew toy", "pet",
	}},
	{Category: domain.CategoryHousehold, Phrases: []string{
		"battery", "batteries", "light bulb", "duct tape", "extension cord",
		"screw", "nail", "hammer", "glue", "charcoal", "lighter fluid",
	}},
}

// FoodGroups assign a category to food items by name. Order matters: the
// first group with a matching phrase wins.
var FoodGroups = []KeywordGroup{
	{Category: domain.CategoryFrozen, Phrases: []string{
		"frozen", "ice cream", "popsicle", "frozen pizza", "tv dinner", "gelato", "sorbet",
	}},
	// Foods whose names contain a beverage word
	{Category: domain.CategoryProduce, Phrases: []string{"water chestnut"}},
	{Category: domain.CategoryBeverages, Phrases: []string{
		"juice", "soda", "cola", "coffee", "tea", "water", "lemonade", "beer", "wine",
		"kombucha", "sports drink", "energy drink", "smoothie", "seltzer",
	}},
	{Category: domain.CategorySnacks, Phrases: []string{
		"chip", "cracker", "cookie", "candy", "chocolate", "pretzel", "popcorn",
		"granola bar", "trail mix", "gummy", "nut", "jerky",
	}},
	{Category: domain.CategoryBakery, Phrases: []string{
		"bread", "bagel", "muffin", "croissant", "bun", "roll", "tortilla", "pita",
		"baguette", "cake", "donut", "pie",
	}},
	{Category: domain.CategoryPantry, Phrases: []string{
		"peanut butter", "olive oil", "vegetable oil", "pasta sauce", "broth", "stock",
		"rice", "pasta", "spaghetti", "noodle", "flour", "sugar", "salt", "pepper flake",
		"cereal", "oatmeal", "oat", "canned", "bean", "lentil", "soup", "ketchup",
		"mustard", "mayonnaise", "vinegar", "spice", "honey", "jam", "syrup",
	}},
	{Category: domain.CategoryMeatSeafood, Phrases: []string{
		"chicken", "beef", "pork", "steak", "bacon", "sausage", "ham", "turkey", "lamb",
		"ground beef", "salmon", "tuna", "shrimp", "fish", "cod", "tilapia", "crab",
		"clam", "mussel", "oyster", "scallop", "lobster",
	}},
	{Category: domain.CategoryDairy, Phrases: []string{
		"milk", "cheese", "yogurt", "butter", "cream", "egg", "sour cream",
		"cottage cheese", "cheddar", "mozzarella", "parmesan", "kefir",
	}},
	{Category: domain.CategoryProduce, Phrases: []string{
		"apple", "banana", "orange", "lemon", "lime", "grape", "berry", "berries",
		"strawberry", "strawberries", "blueberry", "blueberries", "cherry", "cherries", "avocado",
		"tomato", "potato", "onion", "garlic", "carrot", "lettuce", "spinach", "kale",
		"broccoli", "cucumber", "pepper", "celery", "mushroom", "zucchini", "peach",
		"pear", "melon", "cilantro", "herb",
	}},
}

// ProviderCategoryGroups map provider catalog categories onto the taxonomy.
// They are matched against the provider string, not the item name.
var ProviderCategoryGroups = []KeywordGroup{
	{Category: domain.CategoryFrozen, Phrases: []string{"frozen"}},
	{Category: domain.CategoryProduce, Phrases: []string{"produce", "fruit", "vegetable", "legumes and legume products"}},
	{Category: domain.CategoryMeatSeafood, Phrases: []string{"meat", "poultry", "seafood", "finfish", "shellfish", "beef products", "pork products", "sausages and luncheon meats"}},
	{Category: domain.CategoryDairy, Phrases: []string{"dairy", "egg", "cheese"}},
	{Category: domain.CategoryBakery, Phrases: []string{"bakery", "baked products", "bread"}},
	{Category: domain.CategoryBeverages, Phrases: []string{"beverage", "drink"}},
	{Category: domain.CategorySnacks, Phrases: []string{"snack", "sweets", "candy", "nut and seed products"}},
	{Category: domain.CategoryPantry, Phrases: []string{"pantry", "canned", "baking", "cereal", "grain", "pasta", "condiment", "sauce", "soups", "spices", "fats and oils", "breakfast"}},
}

// Classification is the category outcome for an item name
type Classification struct {
	Category domain.ShoppingCategory `json:"category"`
	IsFood   bool                    `json:"isFood"`
}

type compiledGroup struct {
	category domain.ShoppingCategory
	patterns []*regexp.Regexp
}

// Classifier assigns shopping categories and gates non-food items
type Classifier struct {
	nonFood          []compiledGroup
	food             []compiledGroup
	providerMappings []compiledGroup
}

// NewClassifier creates a classifier over the default keyword tables
func NewClassifier() *Classifier {
	return NewClassifierWithTables(NonFoodGroups, FoodGroups, ProviderCategoryGroups)
}

// NewClassifierWithTables creates a classifier over custom keyword tables.
// Groups tagged with a category outside domain.AllCategories are ignored.
func NewClassifierWithTables(nonFood, food, providerMappings []KeywordGroup) *Classifier {
	return &Classifier{
		nonFood:          compileGroups(nonFood),
		food:             compileGroups(food),
		providerMappings: compileGroups(providerMappings),
	}
}

// Gate reports whether name is a non-food item, and if so its category
func (c *Classifier) Gate(name string) (domain.ShoppingCategory, bool) {
	return firstMatch(c.nonFood, name)
}

// Classify runs the food gate and then assigns a category. A mapped provider
// category wins over scanning the item name; Other is the default.
func (c *Classifier) Classify(name, providerCategory string) Classification {
	if category, ok := c.Gate(name); ok {
		return Classification{Category: category, IsFood: false}
	}
	if category, ok := firstMatch(c.providerMappings, providerCategory); ok {
		return Classification{Category: category, IsFood: true}
	}
	if category, ok := firstMatch(c.food, name); ok {
		return Classification{Category: category, IsFood: true}
	}
	return Classification{Category: domain.CategoryOther, IsFood: true}
}

func firstMatch(groups []compiledGroup, text string) (domain.ShoppingCategory, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	for _, group := range groups {
		for _, pattern := range group.patterns {
			if pattern.MatchString(text) {
				return group.category, true
			}
		}
	}
	return "", false
}

// compileGroups skips groups whose category is outside the taxonomy
func compileGroups(groups []KeywordGroup) []compiledGroup {
	compiled := make([]compiledGroup, 0, len(groups))
	for _, group := range groups {
		if !group.Category.Valid() {
			continue
		}
		cg := compiledGroup{category: group.Category}
		for _, phrase := range group.Phrases {
			cg.patterns = append(cg.patterns, phrasePattern(phrase))
		}
		compiled = append(compiled, cg)
	}
	return compiled
}

// phrasePattern matches phrase as whole words, allowing any run of spaces or
// hyphens between words and an optional "s" or "es" plural on the last word
func phrasePattern(phrase string) *regexp.Regexp {
	words := strings.Fields(strings.ToLower(phrase))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b` + strings.Join(words, `[\s-]+`) + `(?:s|es)?\b`)
}
