package stmtledger

import (
	"math"
	"strings"

	"github.com/jbrukh/bayesian"
)

// Suggestion proposes a category for an uncategorized ledger entry. It is
// advisory output for rule authoring; the ledger itself is never mutated.
type Suggestion struct {
	Transaction *Transaction
	Category    string
}

// SuggestCategories trains a naive bayes classifier on the already-labeled
// entries of the ledger and proposes labels for the uncategorized ones.
// A label is only suggested when the classifier is confident. Needs at least
// two distinct categories of training data.
func SuggestCategories(ledger []*Transaction) []Suggestion {
	classifier := trainSuggester(ledger)
	if classifier == nil {
		return nil
	}

	var suggestions []Suggestion
	for _, t := range ledger {
		if t.Category != Uncategorized {
			continue
		}
		if category := predictCategory(classifier, descriptionWords(t.Description)); category != "" {
			suggestions = append(suggestions, Suggestion{Transaction: t, Category: category})
		}
	}
	return suggestions
}

func trainSuggester(ledger []*Transaction) *bayesian.Classifier {
	uniqueCategories := make(map[string]bool)
	for _, t := range ledger {
		if t.Category != Uncategorized {
			uniqueCategories[t.Category] = true
		}
	}
	if len(uniqueCategories) < 2 {
		return nil
	}

	classes := []bayesian.Class{}
	for name := range uniqueCategories {
		classes = append(classes, bayesian.Class(name))
	}

	classifier := bayesian.NewClassifier(classes...)
	for _, t := range ledger {
		if t.Category != Uncategorized {
			classifier.Learn(descriptionWords(t.Description), bayesian.Class(t.Category))
		}
	}
	return classifier
}

func predictCategory(classifier *bayesian.Classifier, words []string) string {
	// Find the highest and second highest scores
	highScore1 := math.Inf(-1)
	highScore2 := math.Inf(-1)
	matchIdx := 0
	scores, _, _ := classifier.LogScores(words)
	for j, score := range scores {
		if score > highScore1 {
			highScore2 = highScore1
			highScore1 = score
			matchIdx = j
		} else if score > highScore2 {
			highScore2 = score
		}
	}
	// A large gap between the top two scores indicates a high confidence
	// match; anything closer is not worth suggesting.
	if highScore1-highScore2 > 10 {
		return string(classifier.Classes[matchIdx])
	}
	return ""
}

func descriptionWords(description string) []string {
	return strings.Fields(strings.ToLower(description))
}
