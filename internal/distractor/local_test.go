package distractor

import "testing"

func TestLocalSamplesFromPool(t *testing.T) {
	pool := []string{"first", "second", "third", "fourth", "fifth"}
	got := Local("correct", pool, 3)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	inPool := make(map[string]bool)
	for _, p := range pool {
		inPool[p] = true
	}
	seen := make(map[string]bool)
	for _, d := range got {
		if !inPool[d] {
			t.Errorf("distractor %q not from pool", d)
		}
		if seen[d] {
			t.Errorf("duplicate distractor %q", d)
		}
		seen[d] = true
	}
}

func TestLocalExcludesCorrect(t *testing.T) {
	pool := []string{"Paris", "paris", "  PARIS ", "Lyon", "Nice", "Lille"}
	for range 20 {
		for _, d := range Local("Paris", pool, 3) {
			if normalize(d) == "paris" {
				t.Fatalf("correct answer %q leaked into distractors", d)
			}
		}
	}
}

func TestLocalPadsWithFillers(t *testing.T) {
	// A two-card set: one real distractor, two fillers.
	got := Local("mitochondria", []string{"ribosome"}, 3)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	real, filler := 0, 0
	seen := make(map[string]bool)
	for _, d := range got {
		if seen[d] {
			t.Errorf("duplicate %q", d)
		}
		seen[d] = true
		if d == "ribosome" {
			real++
		} else {
			filler++
		}
	}
	if real != 1 || filler != 2 {
		t.Errorf("got %d real and %d fillers, want 1 and 2", real, filler)
	}
}

func TestLocalEmptyPool(t *testing.T) {
	got := Local("anything", nil, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 fillers", len(got))
	}
}

func TestLocalZeroCount(t *testing.T) {
	if got := Local("x", []string{"a", "b"}, 0); got != nil {
		t.Errorf("count 0 = %v, want nil", got)
	}
}

func TestLocalDedupesPool(t *testing.T) {
	pool := []string{"alpha", "Alpha", " alpha ", "beta"}
	got := Local("correct", pool, 4)

	lowered := make(map[string]int)
	for _, d := range got {
		lowered[normalize(d)]++
	}
	if lowered["alpha"] > 1 {
		t.Errorf("alpha sampled twice: %v", got)
	}
}
