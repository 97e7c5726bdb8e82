// Package dice parses and rolls D&D style dice expressions such as
// "1d8", "2d6+3", "d20" or a plain integer.
package dice

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var exprRe = regexp.MustCompile(`(?i)^\s*(\d+)?\s*d\s*(\d+)(\s*([+\-])\s*(\d+))?\s*$`)

// Valid reports whether expr is a parseable dice expression.
func Valid(expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}
	if _, err := strconv.Atoi(expr); err == nil {
		return true
	}
	return exprRe.MatchString(expr)
}

// Roll evaluates expr with the supplied source of randomness.
// Supported forms: K, NdM, NdM+K, NdM-K. Malformed expressions roll 0.
func Roll(r *rand.Rand, expr string) int {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0
	}
	// raw int
	if n, err := strconv.Atoi(expr); err == nil {
		return n
	}
	m := exprRe.FindStringSubmatch(expr)
	if m == nil {
		return 0
	}
	count := 1
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	sides, _ := strconv.Atoi(m[2])
	if sides < 1 {
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += 1 + r.Intn(sides)
	}
	if m[3] != "" {
		k, _ := strconv.Atoi(m[5])
		switch m[4] {
		case "+":
			total += k
		case "-":
			total -= k
		}
	}
	if total < 0 {
		total = 0
	}
	return total
}

// D20 rolls a single twenty-sided die.
func D20(r *rand.Rand) int {
	return 1 + r.Intn(20)
}
