package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCandidateRanker(t *testing.T) {
	t.Run("uses default edit distance when zero", func(t *testing.T) {
		r := NewCandidateRanker(RankerConfig{}, nil)
		assert.Equal(t, 1, r.fuzzyEditDistance)
		assert.False(t, r.enableFuzzyMatching)
	})

	t.Run("keeps configured edit distance", func(t *testing.T) {
		r := NewCandidateRanker(RankerConfig{EnableFuzzyMatching: true, FuzzyEditDistance: 2}, nil)
		assert.Equal(t, 2, r.fuzzyEditDistance)
		assert.True(t, r.enableFuzzyMatching)
	})
}

func TestBest(t *testing.T) {
	r := NewCandidateRanker(RankerConfig{}, nil)

	testCases := []struct {
		name  string
		query string
		names []string
		want  int
	}{
		{
			name:  "prefers full coverage",
			query: "whole milk",
			names: []string{"Milk, reduced fat, 2%", "Milk, whole, 3.25% milkfat", "Cheese, cheddar"},
			want:  1,
		},
		{
			name:  "food term outweighs descriptor",
			query: "organic banana",
			names: []string{"Organic Kale", "Bananas, raw", "Banana, organic"},
			want:  2,
		},
		{
			name:  "ties keep provider order",
			query: "apple",
			names: []string{"Apple", "Apple"},
			want:  0,
		},
		{
			name:  "no overlap still returns first candidate",
			query: "quinoa",
			names: []string{"Rice, white", "Couscous"},
			want:  0,
		},
		{
			name:  "no candidates",
			query: "milk",
			names: nil,
			want:  -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Best(tc.query, tc.names))
		})
	}
}

func TestScore(t *testing.T) {
	r := NewCandidateRanker(RankerConfig{}, nil)

	t.Run("exact name scores the maximum", func(t *testing.T) {
		assert.Equal(t, maxScore, r.Score("red apple", "Red Apple"))
	})

	t.Run("empty inputs score zero", func(t *testing.T) {
		assert.Zero(t, r.Score("", "Milk"))
		assert.Zero(t, r.Score("milk", "the of and"))
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"chicken breast", "Chicken, broilers or fryers, breast, meat only, raw"},
			{"greek yogurt", "Yogurt, Greek, plain, nonfat"},
			{"bread", "Bread, whole-wheat, commercially prepared"},
		} {
			score := r.Score(pair[0], pair[1])
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, maxScore)
		}
	})
}

func TestScore_FuzzyMatching(t *testing.T) {
	strict := NewCandidateRanker(RankerConfig{}, nil)
	fuzzy := NewCandidateRanker(RankerConfig{EnableFuzzyMatching: true}, nil)

	strictScore := strict.Score("chiken breast", "Chicken breast")
	fuzzyScore := fuzzy.Score("chiken breast", "Chicken breast")

	assert.Greater(t, fuzzyScore, strictScore)
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "lowercases and splits", input: "Whole Milk", want: []string{"whole", "milk"}},
		{name: "drops punctuation", input: "Milk, whole, 3.25%", want: []string{"milk", "whole"}},
		{name: "drops stop words and units", input: "Bag of 12 oz Chips", want: []string{"bag", "chips"}},
		{name: "drops single characters", input: "Vitamin D Milk", want: []string{"vitamin", "milk"}},
		{name: "empty", input: "", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenize(tc.input))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"12.5", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, isNumeric(tc.input))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	testCases := []struct {
		s1   string
		s2   string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", 1},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "abcd", 1},
		{"kitten", "sitting", 3},
		{"milk", "mlik", 2},
		{"chicken", "chiken", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.s1+"_"+tc.s2, func(t *testing.T) {
			assert.Equal(t, tc.want, levenshteinDistance(tc.s1, tc.s2))
		})
	}
}

func TestFuzzyTokenMatch(t *testing.T) {
	testCases := []struct {
		token1    string
		token2    string
		threshold int
		want      bool
	}{
		{"milk", "milk", 1, true},
		{"milk", "mlik", 1, false},
		{"chicken", "chiken", 1, true},
		{"chicken", "chikin", 1, false},
		{"chicken", "chikin", 2, true},
		{"abc", "abd", 1, false},
		{"strawberry", "strawbery", 1, true},
	}

	for _, tc := range testCases {
		t.Run(tc.token1+"_"+tc.token2, func(t *testing.T) {
			assert.Equal(t, tc.want, fuzzyTokenMatch(tc.token1, tc.token2, tc.threshold))
		})
	}
}

func TestFindIntersection(t *testing.T) {
	count, matched := findIntersection([]string{"whole", "milk"}, []string{"milk", "milk", "fat", "whole"})

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"milk", "whole"}, matched)
}
