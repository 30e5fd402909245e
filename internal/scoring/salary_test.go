package scoring

import (
	"math"
	"testing"
)

func TestSalaryMatchScore(t *testing.T) {
	t.Run("any missing bound yields neutral 0.7", func(t *testing.T) {
		cases := [][4]int{
			{0, 120000, 100000, 150000},
			{80000, 0, 100000, 150000},
			{80000, 120000, 0, 150000},
			{80000, 120000, 100000, 0},
			{0, 0, 0, 0},
		}
		for _, c := range cases {
			if got := SalaryMatchScore(c[0], c[1], c[2], c[3]); got != 0.7 {
				t.Errorf("SalaryMatchScore(%v) = %f, want 0.7", c, got)
			}
		}
	})

	t.Run("overlapping ranges score the mean coverage", func(t *testing.T) {
		// overlap [100k, 120k] = 20k; candidate range 40k -> 0.5;
		// job range 50k -> 0.4; mean 0.45
		got := SalaryMatchScore(80000, 120000, 100000, 150000)
		if math.Abs(got-0.45) > 1e-9 {
			t.Errorf("expected 0.45, got %f", got)
		}
	})

	t.Run("identical ranges score 1.0", func(t *testing.T) {
		if got := SalaryMatchScore(90000, 110000, 90000, 110000); got != 1.0 {
			t.Errorf("expected 1.0, got %f", got)
		}
	})

	t.Run("zero-width candidate range inside job range is fully covered", func(t *testing.T) {
		// overlap is a point: candidate ratio 1.0 (zero-width), job ratio 0
		got := SalaryMatchScore(100000, 100000, 90000, 110000)
		if math.Abs(got-0.5) > 1e-9 {
			t.Errorf("expected 0.5, got %f", got)
		}
	})

	t.Run("job pays more than expected (favorable gap)", func(t *testing.T) {
		// gap 30k over candidate max 60k: 1 - 0.5 = 0.5
		got := SalaryMatchScore(50000, 60000, 90000, 120000)
		if math.Abs(got-0.5) > 1e-9 {
			t.Errorf("expected 0.5, got %f", got)
		}
	})

	t.Run("candidate wants more than offered (unfavorable gap)", func(t *testing.T) {
		// gap 30k over job max 60k: 1 - 0.5 = 0.5
		got := SalaryMatchScore(90000, 120000, 50000, 60000)
		if math.Abs(got-0.5) > 1e-9 {
			t.Errorf("expected 0.5, got %f", got)
		}
	})

	t.Run("gap floors", func(t *testing.T) {
		if got := SalaryMatchScore(10000, 20000, 200000, 300000); got != 0.2 {
			t.Errorf("favorable floor: expected 0.2, got %f", got)
		}
		if got := SalaryMatchScore(200000, 300000, 10000, 20000); got != 0.1 {
			t.Errorf("unfavorable floor: expected 0.1, got %f", got)
		}
	})

	t.Run("bounds over a value grid", func(t *testing.T) {
		values := []int{0, 10000, 50000, 100000, 100001, 500000}
		for _, cMin := range values {
			for _, cMax := range values {
				for _, jMin := range values {
					for _, jMax := range values {
						if cMin > cMax || jMin > jMax {
							continue
						}
						got := SalaryMatchScore(cMin, cMax, jMin, jMax)
						if got < 0.0 || got > 1.0 {
							t.Errorf("score %f out of [0, 1] for (%d-%d, %d-%d)", got, cMin, cMax, jMin, jMax)
						}
					}
				}
			}
		}
	})
}
