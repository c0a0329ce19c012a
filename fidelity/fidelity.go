// Package fidelity scores how much textual content survives a conversion.
// The score is a whitespace-normalized Levenshtein similarity in [0,100],
// used by the save pipeline as a lossiness heuristic.
package fidelity

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultMinFidelity is the advisory threshold below which a round trip is
// considered lossy.
const DefaultMinFidelity = 80

// Report holds the outcome of a fidelity check. Warnings are advisory only;
// a low score never fails the check.
type Report struct {
	Fidelity int      `json:"fidelity"`
	Warnings []string `json:"warnings,omitempty"`
}

// Score compares two strings after stripping all whitespace and returns a
// similarity score in [0,100]. An empty original scores 100; a non-empty
// original with an empty conversion scores 0.
func Score(original, converted string) int {
	normOriginal := stripWhitespace(original)
	normConverted := stripWhitespace(converted)

	if normOriginal == "" {
		return 100
	}
	if normConverted == "" {
		return 0
	}

	distance := levenshtein.ComputeDistance(normOriginal, normConverted)
	maxLen := utf8.RuneCountInString(normOriginal)
	if n := utf8.RuneCountInString(normConverted); n > maxLen {
		maxLen = n
	}

	similarity := float64(maxLen-distance) / float64(maxLen)
	return int(math.Round(similarity * 100))
}

// Validate computes the fidelity score and warns when it falls below
// minFidelity. A minFidelity of zero or less selects DefaultMinFidelity.
func Validate(original, converted string, minFidelity int) Report {
	if minFidelity <= 0 {
		minFidelity = DefaultMinFidelity
	}

	report := Report{Fidelity: Score(original, converted)}
	if report.Fidelity < minFidelity {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"conversion fidelity %d below threshold %d: content may have been lost",
			report.Fidelity, minFidelity,
		))
	}

	return report
}

func stripWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}
