package service

import "testing"

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"ab", "", 2},
		{"kitten", "sitting", 3},
		{"ab", "ba", 1}, // transposition counts once
		{"فلاجيل", "فلاجيل", 0},
		{"فلاجيل", "فلاجل", 1},
	}
	for _, tt := range tests {
		if got := damerauLevenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("damerauLevenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("panadol", "panadol"); got != 100 {
		t.Errorf("identical strings: Ratio = %d, want 100", got)
	}
	if got := Ratio("", "panadol"); got != 0 {
		t.Errorf("empty vs non-empty: Ratio = %d, want 0", got)
	}
	if got := Ratio("panadol extra", "panadol extr"); got < 90 {
		t.Errorf("near-identical strings: Ratio = %d, want >= 90", got)
	}
}

func TestTokenSortRatio(t *testing.T) {
	a := "فلاجيل 500 اقراص"
	b := "اقراص فلاجيل 500"
	if got := TokenSortRatio(a, b); got != 100 {
		t.Errorf("word order should not matter: TokenSortRatio = %d, want 100", got)
	}
	if plain := Ratio(a, b); plain == 100 {
		t.Errorf("plain Ratio should be order-sensitive, got 100")
	}
}
