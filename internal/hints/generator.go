package hints

import (
	"fmt"

	"github.com/unrealities/talkie-trivia-sub000/internal/models"
)

// Result is the outcome of comparing a wrong guess against the answer.
type Result struct {
	Feedback      string
	RevealedHints map[models.HintCategory]bool
}

// feedbackOrder ranks categories by how telling a shared attribute is, most
// specific first. The first match in this order drives the feedback message.
var feedbackOrder = []models.HintCategory{
	models.HintDirector,
	models.HintActor,
	models.HintGenre,
	models.HintDecade,
}

var matchFeedback = map[models.HintCategory]string{
	models.HintDirector: "Right track! Same director.",
	models.HintActor:    "Close! They share a lead actor.",
	models.HintGenre:    "Same genre. Keep going.",
	models.HintDecade:   "Right decade, wrong movie.",
}

// NeutralFeedback is used when nothing matches or no detail record exists
// for the guessed item.
const NeutralFeedback = "Not quite. Try again!"

// Generate compares the guessed item's hint attributes against the correct
// item's and reports which categories newly match. It is pure: neither input
// map is mutated. A nil guessed item degrades to neutral feedback.
func Generate(guessed, correct *models.TriviaItem, alreadyRevealed map[models.HintCategory]bool) Result {
	res := Result{
		Feedback:      NeutralFeedback,
		RevealedHints: make(map[models.HintCategory]bool),
	}
	if guessed == nil || correct == nil {
		return res
	}

	matched := make(map[models.HintCategory]bool)
	for category, answer := range correct.Hints {
		if answer == "" {
			continue
		}
		if guessed.Hints[category] == answer {
			matched[category] = true
			if !alreadyRevealed[category] {
				res.RevealedHints[category] = true
			}
		}
	}

	for _, category := range feedbackOrder {
		if matched[category] {
			res.Feedback = matchFeedback[category]
			break
		}
	}
	if res.Feedback == NeutralFeedback && len(matched) > 0 {
		// A matched category outside the known set still counts as progress.
		res.Feedback = fmt.Sprintf("Something matches: %s.", firstKey(matched))
	}
	return res
}

func firstKey(m map[models.HintCategory]bool) models.HintCategory {
	for _, category := range models.HintCategories {
		if m[category] {
			return category
		}
	}
	for k := range m {
		return k
	}
	return ""
}
