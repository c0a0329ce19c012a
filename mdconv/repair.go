package mdconv

import "strings"

// Repair balances unmatched inline Markdown delimiters by appending the
// missing closer at the end of the string. It is a best-effort heuristic
// for content cut off mid-edit, not a correctness guarantee: no attempt is
// made to locate the actual unmatched position.
func Repair(markdown string) string {
	double, single := countStarDelimiters(markdown)

	repaired := markdown
	if double%2 == 1 {
		repaired += "**"
	}
	if single%2 == 1 {
		repaired += "*"
	}
	if strings.Count(markdown, "`")%2 == 1 {
		repaired += "`"
	}

	return repaired
}

// countStarDelimiters scans runs of consecutive asterisks. Each run of
// length n contributes n/2 bold delimiters and n%2 italic delimiters, which
// matches counting non-overlapping "**" pairs first and lone "*" after.
func countStarDelimiters(s string) (double, single int) {
	run := 0
	for _, r := range s {
		if r == '*' {
			run++
			continue
		}
		double += run / 2
		single += run % 2
		run = 0
	}
	double += run / 2
	single += run % 2
	return double, single
}
