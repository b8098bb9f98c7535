package usecase_scoring

import (
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type ScoringUnitSuite struct {
	suite.Suite
}

func (s *ScoringUnitSuite) TestCompute(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		ref      string
		typed    string
		elapsed  float64
		expected struct {
			wpm      float64
			accuracy float64
			errors   int
			correct  int
		}
	}{
		{
			name:    "Should score a perfect attempt",
			ref:     "hello world",
			typed:   "hello world",
			elapsed: 60,
			expected: struct {
				wpm      float64
				accuracy float64
				errors   int
				correct  int
			}{wpm: 2.2, accuracy: 100, errors: 0, correct: 11},
		},
		{
			name:    "Should count positional mismatches",
			ref:     "abc",
			typed:   "abx",
			elapsed: 30,
			expected: struct {
				wpm      float64
				accuracy float64
				errors   int
				correct  int
			}{wpm: 1.2, accuracy: 66.67, errors: 1, correct: 2},
		},
		{
			name:    "Should return zero accuracy for empty reference",
			ref:     "",
			typed:   "x",
			elapsed: 10,
			expected: struct {
				wpm      float64
				accuracy float64
				errors   int
				correct  int
			}{wpm: 1.2, accuracy: 0, errors: 0, correct: 0},
		},
		{
			name:    "Should return zero wpm for zero elapsed time",
			ref:     "abc",
			typed:   "abc",
			elapsed: 0,
			expected: struct {
				wpm      float64
				accuracy float64
				errors   int
				correct  int
			}{wpm: 0, accuracy: 100, errors: 0, correct: 3},
		},
		{
			name:    "Should keep reference length as accuracy denominator for overlong input",
			ref:     "ab",
			typed:   "abcd",
			elapsed: 60,
			expected: struct {
				wpm      float64
				accuracy float64
				errors   int
				correct  int
			}{wpm: 0.8, accuracy: 100, errors: 0, correct: 2},
		},
		{
			name:    "Should count all reference chars as errors for empty input",
			ref:     "abcd",
			typed:   "",
			elapsed: 15,
			expected: struct {
				wpm      float64
				accuracy float64
				errors   int
				correct  int
			}{wpm: 0, accuracy: 0, errors: 4, correct: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()

			stats := Compute(tc.ref, tc.typed, tc.elapsed)

			assert.InDelta(t, tc.expected.wpm, stats.WPM, 0.001)
			assert.InDelta(t, tc.expected.accuracy, stats.Accuracy, 0.001)
			assert.Equal(t, tc.expected.errors, stats.Errors)
			assert.Equal(t, tc.expected.correct, stats.CorrectChars)
			assert.Equal(t, len(tc.ref), stats.TotalChars)
		})
	}
}

// The corpus contains non-ASCII punctuation, so counting must be by
// character, not by byte.
func (s *ScoringUnitSuite) TestComputeCountsCharacters(t provider.T) {
	t.Parallel()

	stats := Compute("a–b", "a–b", 36)
	assert.Equal(t, 3, stats.TotalChars)
	assert.Equal(t, 3, stats.CorrectChars)
	assert.InDelta(t, 100, stats.Accuracy, 0.001)
	assert.InDelta(t, 1.0, stats.WPM, 0.001)

	stats = Compute("a–b", "a-b", 36)
	assert.Equal(t, 2, stats.CorrectChars)
	assert.Equal(t, 1, stats.Errors)
	assert.InDelta(t, 66.67, stats.Accuracy, 0.001)
}

func (s *ScoringUnitSuite) TestScore(t provider.T) {
	t.Parallel()

	assert.InDelta(t, 54.0, Score(60, 90), 0.001)
	assert.InDelta(t, 40.0, Score(40, 100), 0.001)
	assert.InDelta(t, 0.0, Score(0, 100), 0.001)
}

func (s *ScoringUnitSuite) TestRound2(t provider.T) {
	t.Parallel()

	assert.Equal(t, 66.67, Round2(200.0/3.0))
	assert.Equal(t, 2.2, Round2(2.2))
	assert.Equal(t, 0.0, Round2(0))
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ScoringUnitSuite))
}
