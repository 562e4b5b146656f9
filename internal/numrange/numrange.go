// Package numrange parses compact ordinal range specifications such as
// "1-3,5,7-9" into sets of 1-based integers.
package numrange

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxSpan caps the number of ordinals a single range item may expand to.
// Items exceeding it are skipped like any other malformed item.
const MaxSpan = 10000

// Parse returns the sorted, de-duplicated set of 1-based ordinals described
// by spec. Items are comma separated; each is either "n" or an inclusive
// range "a-b" (or "a..b"). Reversed ranges are accepted. Malformed, zero and
// negative items are skipped.
func Parse(spec string) []int {
	var out []int
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lo, hi, ok := parseItem(item)
		if !ok {
			continue
		}
		for n := lo; n <= hi; n++ {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Indices returns the ordinals of spec converted to 0-based indices.
func Indices(spec string) []int {
	ordinals := Parse(spec)
	for i := range ordinals {
		ordinals[i]--
	}
	return ordinals
}

// Max returns the largest ordinal spec asks for, counting the items Parse
// skips for being wider than MaxSpan or too large for an int (reported as
// math.MaxInt). Items that are not made of digits contribute nothing. Zero
// means spec requests no ordinal.
func Max(spec string) int {
	largest := 0
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		left, right, found := strings.Cut(item, "..")
		if !found {
			left, right, found = strings.Cut(item, "-")
		}
		if !found {
			right = left
		}
		a, okA := digits(left)
		b, okB := digits(right)
		if !okA || !okB {
			continue
		}
		largest = max(largest, a, b)
	}
	return largest
}

// digits parses a run of ASCII digits, saturating at math.MaxInt.
func digits(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}

// Format renders a sorted ordinal set back into its compact form,
// collapsing consecutive runs: [1 2 3 5] -> "1-3,5".
func Format(ordinals []int) string {
	if len(ordinals) == 0 {
		return ""
	}
	sorted := slices.Compact(slices.Sorted(slices.Values(ordinals)))

	var b strings.Builder
	start := sorted[0]
	prev := start
	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(start))
		if prev != start {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(prev))
		}
	}
	for _, n := range sorted[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return b.String()
}

func parseItem(item string) (lo, hi int, ok bool) {
	sep := ""
	switch {
	case strings.Contains(item, ".."):
		sep = ".."
	case strings.Contains(item, "-"):
		sep = "-"
	}

	if sep == "" {
		n, err := strconv.Atoi(item)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		return n, n, true
	}

	left, right, _ := strings.Cut(item, sep)
	a, errA := strconv.Atoi(strings.TrimSpace(left))
	b, errB := strconv.Atoi(strings.TrimSpace(right))
	if errA != nil || errB != nil || a < 1 || b < 1 {
		return 0, 0, false
	}
	if a > b {
		a, b = b, a
	}
	if b-a >= MaxSpan {
		return 0, 0, false
	}
	return a, b, true
}
