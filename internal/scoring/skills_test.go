package scoring

import (
	"math"
	"reflect"
	"testing"
)

func skillSet(skills ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

func TestSkillMatchScore(t *testing.T) {
	t.Run("job without requirements scores neutral-positive 0.7", func(t *testing.T) {
		got := SkillMatchScore(skillSet("python", "go"), skillSet())
		if got != 0.7 {
			t.Errorf("expected 0.7, got %f", got)
		}
	})

	t.Run("candidate without skills scores 0.2", func(t *testing.T) {
		got := SkillMatchScore(skillSet(), skillSet("python"))
		if got != 0.2 {
			t.Errorf("expected 0.2, got %f", got)
		}
	})

	t.Run("weighted jaccard plus coverage", func(t *testing.T) {
		// intersection 3, union 5: J = 0.6; coverage 3/4 = 0.75
		// 0.6*0.6 + 0.4*0.75 = 0.66
		got := SkillMatchScore(
			skillSet("python", "javascript", "react", "communication"),
			skillSet("python", "javascript", "react", "machine learning"),
		)
		if math.Abs(got-0.66) > 1e-9 {
			t.Errorf("expected 0.66, got %f", got)
		}
	})

	t.Run("full match scores 1.0", func(t *testing.T) {
		got := SkillMatchScore(skillSet("go", "postgres"), skillSet("go", "postgres"))
		if got != 1.0 {
			t.Errorf("expected 1.0, got %f", got)
		}
	})

	t.Run("adding a required skill never decreases the score", func(t *testing.T) {
		required := skillSet("python", "javascript", "react", "machine learning")
		candidate := []string{"communication"}
		prev := SkillMatchScore(skillSet(candidate...), required)

		for _, gained := range []string{"python", "javascript", "react", "machine learning"} {
			candidate = append(candidate, gained)
			got := SkillMatchScore(skillSet(candidate...), required)
			if got < prev {
				t.Errorf("score decreased from %f to %f after adding %q", prev, got, gained)
			}
			prev = got
		}
	})

	t.Run("bounds", func(t *testing.T) {
		pairs := [][2]map[string]struct{}{
			{skillSet(), skillSet()},
			{skillSet("a"), skillSet("b")},
			{skillSet("a", "b", "c", "d", "e", "f"), skillSet("a")},
			{skillSet("a"), skillSet("a", "b", "c", "d", "e", "f")},
		}
		for _, pair := range pairs {
			got := SkillMatchScore(pair[0], pair[1])
			if got < 0.0 || got > 1.0 {
				t.Errorf("score %f out of [0, 1] for %v vs %v", got, pair[0], pair[1])
			}
		}
	})
}

func TestSharedAndMissingSkills(t *testing.T) {
	candidate := skillSet("python", "react", "sql")
	required := skillSet("python", "react", "terraform", "aws")

	if got := SharedSkills(candidate, required); !reflect.DeepEqual(got, []string{"python", "react"}) {
		t.Errorf("SharedSkills = %v", got)
	}
	if got := MissingSkills(candidate, required); !reflect.DeepEqual(got, []string{"aws", "terraform"}) {
		t.Errorf("MissingSkills = %v", got)
	}
}

func TestSkillJaccard(t *testing.T) {
	if got := SkillJaccard(skillSet(), skillSet()); got != 1.0 {
		t.Errorf("two empty sets should be identical, got %f", got)
	}
	if got := SkillJaccard(skillSet("a", "b"), skillSet("b", "c")); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("expected 1/3, got %f", got)
	}
	if got := SkillJaccard(skillSet("a"), skillSet()); got != 0.0 {
		t.Errorf("expected 0.0, got %f", got)
	}
}
