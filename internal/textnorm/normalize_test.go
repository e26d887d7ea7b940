package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bebo café todas las mañanas.", "bebo café todas las mañanas"},
		{"  Hola   mundo  ", "hola mundo"},
		{"¿Cómo estás?", "¿cómo estás"},
		{"Ya veo...", "ya veo"},
		{"", ""},
		{"   ", ""},
		{"UPPER case", "upper case"},
		{"tab\tand\nnewline", "tab and newline"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePreservesDiacritics(t *testing.T) {
	a := Normalize("Bebo café todas las mañanas.")
	b := Normalize("bebo cafe todas las mananas")
	if a == b {
		t.Errorf("strict keys collided: %q vs %q", a, b)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bebo café todas las mañanas.", "bebo cafe todas las mananas"},
		{"Über schön", "uber schon"},
		{"déjà vu", "deja vu"},
		{"no accents here", "no accents here"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldCollapsesAccentVariants(t *testing.T) {
	if Fold("Bebo café todas las mañanas.") != Fold("bebo cafe todas las mananas") {
		t.Error("loose keys should collide for accent-only differences")
	}
}
