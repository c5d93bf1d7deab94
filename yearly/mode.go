package yearly

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// RepresentativeSalary returns the most frequent entry amount, rounded to
// cents. Ties go to the smallest amount. No entries yields zero.
func RepresentativeSalary(entries []Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}

	counts := make(map[string]int)
	values := make(map[string]decimal.Decimal)
	for _, e := range entries {
		rounded := generic.Round2(e.Gross)
		key := rounded.StringFixed(2)
		counts[key]++
		values[key] = rounded
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return values[keys[i]].LessThan(values[keys[j]])
	})

	return values[keys[0]]
}
