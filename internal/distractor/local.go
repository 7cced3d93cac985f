package distractor

import (
	"math/rand/v2"
	"strings"
)

// fillers pad the result when a set is too small to supply enough real
// distractors. Policy, not an error: a tiny set still gets a full
// question, just with generic wrong answers.
var fillers = []string{
	"Incorrect Answer A",
	"Incorrect Answer B",
	"Incorrect Answer C",
	"Incorrect Answer D",
}

// Local samples count distractors from the other cards' values: a uniform
// sample without replacement, padded with generic fillers when the pool
// runs short. The result never contains duplicates and never contains the
// correct value.
func Local(correct string, pool []string, count int) []string {
	if count <= 0 {
		return nil
	}

	candidates := make([]string, 0, len(pool))
	seen := map[string]bool{normalize(correct): true}
	for _, v := range pool {
		key := normalize(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, v)
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	for i := 0; len(candidates) < count && i < len(fillers); i++ {
		if !seen[normalize(fillers[i])] {
			candidates = append(candidates, fillers[i])
		}
	}

	return candidates
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
