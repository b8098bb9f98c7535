package usecase_scoring

import (
	"math"

	"github.com/keyduel/core/internal/model"
)

const charsPerWord = 5

// Compute scores one typing attempt against the reference text.
// Both texts are compared character by character, not byte by byte,
// so non-ASCII punctuation in the corpus counts as one position.
//
// Accuracy counts positions where the typed character matches the
// reference. When the typed text runs longer than the reference the
// comparison direction flips: reference positions are checked against
// the typed text instead. That asymmetry is a deliberate policy, kept
// as-is. The denominator is always the reference length.
func Compute(referenceText, typedText string, elapsedSeconds float64) model.AttemptStats {
	reference := []rune(referenceText)
	typed := []rune(typedText)
	totalChars := len(reference)

	correctChars := 0
	for i := 0; i < len(typed) && i < totalChars; i++ {
		if typed[i] == reference[i] {
			correctChars++
		}
	}
	if len(typed) > totalChars {
		correctChars = 0
		for i := 0; i < totalChars && i < len(typed); i++ {
			if reference[i] == typed[i] {
				correctChars++
			}
		}
	}

	var accuracy float64
	if totalChars > 0 {
		accuracy = float64(correctChars) / float64(totalChars) * 100
	}

	var wpm float64
	if elapsedSeconds > 0 {
		wordsTyped := float64(len(typed)) / charsPerWord
		wpm = wordsTyped / (elapsedSeconds / 60)
	}

	errors := totalChars - correctChars
	if errors < 0 {
		errors = 0
	}

	return model.AttemptStats{
		WPM:          Round2(wpm),
		Accuracy:     Round2(accuracy),
		Errors:       errors,
		TimeTaken:    Round2(elapsedSeconds),
		TotalChars:   totalChars,
		CorrectChars: correctChars,
	}
}

// Score combines wpm and accuracy into the competition ranking metric.
func Score(wpm, accuracy float64) float64 {
	return wpm * accuracy / 100
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
