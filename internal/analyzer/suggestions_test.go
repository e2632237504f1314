package analyzer

import (
	"reflect"
	"testing"
)

func TestSuggestionSelector_Select(t *testing.T) {
	s := NewSuggestionSelector(DefaultSuggestions(), DefaultMaxSuggestions, NewRand(7))

	t.Run("disabled", func(t *testing.T) {
		got := s.Select(Happy, false)
		if got == nil || len(got) != 0 {
			t.Errorf("Select(Happy, false) = %#v, want empty slice", got)
		}
	})

	t.Run("category without list", func(t *testing.T) {
		got := s.Select(Neutral, true)
		if got == nil || len(got) != 0 {
			t.Errorf("Select(Neutral, true) = %#v, want empty slice", got)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		if got := s.Select(Category("joy"), true); len(got) != 0 {
			t.Errorf("Select(joy) = %v, want empty", got)
		}
	})

	for _, c := range Categories() {
		if c == Neutral {
			continue
		}
		t.Run(string(c), func(t *testing.T) {
			candidates := DefaultSuggestions()[c]
			if len(candidates) == 0 {
				t.Fatalf("no suggestions defined for %s", c)
			}
			got := s.Select(c, true)
			if want := min(4, len(candidates)); len(got) != want {
				t.Fatalf("len = %d, want %d", len(got), want)
			}

			allowed := make(map[string]bool)
			for _, cand := range candidates {
				allowed[cand] = true
			}
			seen := make(map[string]bool)
			for _, sug := range got {
				if !allowed[sug] {
					t.Errorf("suggestion %q not in %s list", sug, c)
				}
				if seen[sug] {
					t.Errorf("suggestion %q returned twice", sug)
				}
				seen[sug] = true
			}
		})
	}
}

func TestSuggestionSelector_ShortList(t *testing.T) {
	table := map[Category][]string{Calm: {"breathe", "walk"}}
	s := NewSuggestionSelector(table, 4, fixedRand{})

	got := s.Select(Calm, true)
	if want := []string{"breathe", "walk"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}
}

type reverseRand struct{ fixedRand }

func (reverseRand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = n - 1 - i
	}
	return p
}

func TestSuggestionSelector_UsesPermutationOrder(t *testing.T) {
	table := map[Category][]string{Sad: {"a", "b", "c", "d", "e"}}
	s := NewSuggestionSelector(table, 4, reverseRand{})

	got := s.Select(Sad, true)
	if want := []string{"e", "d", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}
}
