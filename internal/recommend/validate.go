// ABOUTME: Mechanical validation of generator output against evidentiary and safety rules.
// ABOUTME: The generator is untrusted; acceptance never relies on it behaving well.
package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mediulus/train-together/internal/models"
)

// CanonicalInsufficientData is the only sanctioned fallback text. When the
// week is too sparse to analyze, the accepted output is exactly this
// sentence regardless of what the generator produced.
const CanonicalInsufficientData = "Not enough training data was logged this week to provide a recommendation."

// ErrValidation signals a candidate that failed the rule chain without a
// valid override. It must never be downgraded to acceptance.
var ErrValidation = errors.New("recommendation validation failed")

// maxWords is the ceiling on accepted note length.
const maxWords = 200

// insufficientDataThreshold is the number of fully-missing days in a week
// at or above which analysis is not credible.
const insufficientDataThreshold = 3

// bannedTerms screens diagnostic, medical, and prescriptive vocabulary.
// Matched case-insensitively as substrings, so "diagnose"/"diagnosis" and
// "prescribe"/"prescription" each need one stem.
var bannedTerms = []string{
	"diagnos",
	"prescri",
	"medicat",
	"disease",
	"illness",
	"disorder",
	"syndrome",
	"treatment",
	"therapy",
	"dosage",
	"supplement",
	"painkiller",
	"ibuprofen",
}

// Validate applies the rule chain to a candidate note, short-circuiting on
// the first matching rule:
//
//  1. Insufficient-data override: if three or more days of the week carry
//     no readings at all, the result is the canonical sentence no matter
//     what the candidate says. Plausible text is not evidence.
//  2. Contradicted insufficiency: the candidate claims insufficient data
//     while the week actually supports analysis.
//  3. Length ceiling.
//  4. Policy vocabulary screen.
//
// On rejection the candidate is returned as-is alongside ErrValidation;
// it is never silently edited.
func Validate(s *models.WeeklySummary, candidate string) (string, error) {
	missing := fullyMissingDays(s)

	if missing >= insufficientDataThreshold {
		return CanonicalInsufficientData, nil
	}

	if strings.Contains(candidate, CanonicalInsufficientData) {
		return candidate, fmt.Errorf("%w: insufficient-data claim with only %d fully missing days", ErrValidation, missing)
	}

	if n := len(strings.Fields(candidate)); n > maxWords {
		return candidate, fmt.Errorf("%w: %d words exceeds the %d word limit", ErrValidation, n, maxWords)
	}

	lower := strings.ToLower(candidate)
	for _, term := range bannedTerms {
		if strings.Contains(lower, term) {
			return candidate, fmt.Errorf("%w: contains disallowed term %q", ErrValidation, term)
		}
	}

	return candidate, nil
}

// fullyMissingDays counts the days of the week with no metric readings at
// all, whether the day has no record or only an empty one.
func fullyMissingDays(s *models.WeeklySummary) int {
	withData := 0
	for _, m := range s.Days {
		if !m.IsEmpty() {
			withData++
		}
	}
	return 7 - withData
}
