package cardgen

import (
	"fmt"
	"strings"
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(r *Result, _ GenerateInput) *ValidationError {
	if r.Title == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "title is empty",
			Retryable: true,
		}
	}
	if len(r.Cards) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "set has no cards",
			Retryable: true,
		}
	}
	for i, c := range r.Cards {
		if strings.TrimSpace(c.Term) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d has an empty term", i+1),
				Retryable: true,
			}
		}
		if strings.TrimSpace(c.Definition) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d has an empty definition", i+1),
				Retryable: true,
			}
		}
		if len(c.Term) > 200 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d term exceeds 200 characters", i+1),
				Retryable: true,
			}
		}
		if len(c.Definition) > 1000 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d definition exceeds 1000 characters", i+1),
				Retryable: true,
			}
		}
	}
	return nil
}

// UniquenessValidator checks that no term appears twice in the set and
// that no generated term collides with the existing set.
type UniquenessValidator struct{}

func (v *UniquenessValidator) Name() string { return "uniqueness" }

func (v *UniquenessValidator) Validate(r *Result, input GenerateInput) *ValidationError {
	seen := make(map[string]bool, len(r.Cards)+len(input.ExistingTerms))
	for _, t := range input.ExistingTerms {
		seen[normalizeTerm(t)] = true
	}
	for i, c := range r.Cards {
		key := normalizeTerm(c.Term)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate term %q at card %d", c.Term, i+1),
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

// CountValidator checks that the set size matches the request within
// tolerance. The model sometimes returns one card more or less; anything
// further off is rejected.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(r *Result, input GenerateInput) *ValidationError {
	got, want := len(r.Cards), input.Count
	if got < want-1 || got > want+1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("requested %d cards, got %d", want, got),
			Retryable: true,
		}
	}
	return nil
}

func normalizeTerm(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
