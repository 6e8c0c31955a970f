package version

import (
	"sort"
	"testing"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.0.1", -1},
		{"1.0", "1.0_pre1", 1},
		{"1.0", "1.0-r1", -1},
		{"1.0", "1.0_p1", -1},
		{"1.0-r1", "1.0_p1", -1},
		{"1.0_alpha", "1.0_alpha1", -1},
		{"1.0_p", "1.0_p0", 0},
		{"1.0-r01", "1.0-r1", 0},
		{"2", "1.9", 1},
		{"10", "9", 1},
		{"010", "9", 1},
		{"1.0a", "1.0", 1},
		{"1.0a", "1.0.1", -1},
		{"1.0a", "1.0b", -1},
		{"1.0_rc1-r1", "1.0", -1},
		{"1.0-r1", "1.0-r1.1", -1},
		{"1.0-r1.2", "1.0-r2", -1},
		{"1.0_beta2_p1", "1.0_beta2", 1},
		{"1.0_beta2_rc1", "1.0_beta2", -1},

		// leading zero rule on primaries
		{"1.01", "1.010", 0},
		{"1.0100", "1.01", 0},
		{"1.1", "1.10", -1},
		{"1.01", "1.1", -1},
		{"1.09", "1.1", -1},
		{"1.0", "1.00", 0},
		{"1.001", "1.01", -1},

		// per component, not whole string
		{"3.3.5.20050130-r1", "3.3.6", -1},
		{"1.9", "1.10", -1},
		{"1.2.3", "1.2.10", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			if got := sign(Compare(a, b)); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := sign(Compare(b, a)); got != -tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestCompare_SuffixChain(t *testing.T) {
	chain := []string{
		"1.0_alpha1",
		"1.0_beta1",
		"1.0_pre1",
		"1.0_rc1",
		"1.0",
		"1.0-r1",
		"1.0_p1",
		"1.0_p1-r1",
		"1.0a",
		"1.0.1",
	}

	for i := 0; i+1 < len(chain); i++ {
		a, b := MustParse(chain[i]), MustParse(chain[i+1])
		if !a.Less(b) {
			t.Errorf("expected %s < %s", chain[i], chain[i+1])
		}
	}

	// Sorting a shuffled copy must restore the chain
	shuffled := []string{chain[6], chain[0], chain[9], chain[3], chain[5], chain[1], chain[8], chain[2], chain[7], chain[4]}
	versions := make([]Version, len(shuffled))
	for i, s := range shuffled {
		versions[i] = MustParse(s)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
	for i, v := range versions {
		if v.String() != chain[i] {
			t.Errorf("sorted[%d] = %s, want %s", i, v, chain[i])
		}
	}
}

func TestCompareTilde(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0-r5", 0},
		{"1.0-r1.1", "1.0", 0},
		{"1.0-r2.1", "1.0-r1", 0},
		{"1.0_rc1-r2", "1.0_rc1", 0},
		{"1.0_p1", "1.0-r3", 1},
		{"1.0_rc1-r9", "1.0", -1},
		{"1.1-r1", "1.0-r9", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			if got := sign(CompareTilde(a, b)); got != tt.want {
				t.Errorf("CompareTilde(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := sign(CompareMode(a, b, ModeTilde)); got != tt.want {
				t.Errorf("CompareMode(tilde) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompare_Garbage(t *testing.T) {
	p := Parser{AcceptGarbage: true}
	a, _, _ := p.Parse("1.0-bar")
	b, _, _ := p.Parse("1.0-foo")
	clean := MustParse("1.0")

	if Compare(a, b) >= 0 {
		t.Errorf("expected %s < %s", a, b)
	}
	// Garbage sorts below every real part, so a clean version wins
	if Compare(clean, a) <= 0 {
		t.Errorf("expected %s > %s", clean, a)
	}
	if !a.Equal(a) {
		t.Error("garbage version should equal itself")
	}
}

func TestCompare_ZeroVersion(t *testing.T) {
	var zero Version
	if Compare(zero, zero) != 0 {
		t.Error("zero versions should compare equal")
	}
	if Compare(zero, MustParse("0")) >= 0 {
		t.Error("zero version should sort before any parsed version")
	}
}
