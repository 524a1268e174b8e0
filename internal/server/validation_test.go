package server

import "testing"

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "alice", "alice", false},
		{"trimmed", "  alice  ", "alice", false},
		{"collapsed spaces", "big  al", "big al", false},
		{"empty", "   ", "", true},
		{"too long", "abcdefghijklmnopqrstu", "", true},
		{"unsupported runes", "al*ce", "", true},
		{"non ascii", "ålice", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validateUsername(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidateChoices(t *testing.T) {
	cases := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"two choices", []string{"Paris", "London"}, false},
		{"six choices", []string{"a", "b", "c", "d", "e", "f"}, false},
		{"one choice", []string{"Paris"}, true},
		{"seven choices", []string{"a", "b", "c", "d", "e", "f", "g"}, true},
		{"duplicate after casefold", []string{"Paris", "paris"}, true},
		{"duplicate after trim", []string{"Paris", " Paris "}, true},
		{"blank choice", []string{"Paris", "  "}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validateChoices(tc.input)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %v", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	if got, err := validateCategory(" Science_2024 "); err != nil || got != "Science_2024" {
		t.Fatalf("expected trimmed category, got %q err %v", got, err)
	}
	if got, err := validateCategory(""); err != nil || got != "" {
		t.Fatalf("expected empty category to pass through, got %q err %v", got, err)
	}
	if _, err := validateCategory("bad category!"); err == nil {
		t.Fatal("expected punctuation to be rejected")
	}
	if _, err := validateCategory("abcdefghijklmnopqrstuvwxyz0123456"); err == nil {
		t.Fatal("expected a 33-character category to be rejected")
	}
}

func TestValidateDifficulty(t *testing.T) {
	if got, err := validateDifficulty(""); err != nil || got != difficultyMedium {
		t.Fatalf("expected empty difficulty to default to medium, got %q err %v", got, err)
	}
	if got, err := validateDifficulty(" HARD "); err != nil || got != difficultyHard {
		t.Fatalf("expected hard, got %q err %v", got, err)
	}
	if _, err := validateDifficulty("extreme"); err == nil {
		t.Fatal("expected unknown difficulty to be rejected")
	}
}

func TestValidatePoints(t *testing.T) {
	if got, err := validatePoints(0); err != nil || got != 0 {
		t.Fatalf("expected zero to mean unset, got %d err %v", got, err)
	}
	if got, err := validatePoints(100); err != nil || got != 100 {
		t.Fatalf("expected 100 to pass, got %d err %v", got, err)
	}
	if _, err := validatePoints(101); err == nil {
		t.Fatal("expected 101 to be rejected")
	}
	if _, err := validatePoints(-5); err == nil {
		t.Fatal("expected negative points to be rejected")
	}
}

func TestValidateRoundLimit(t *testing.T) {
	if got, err := validateRoundLimit(0, 5, 20); err != nil || got != 5 {
		t.Fatalf("expected fallback, got %d err %v", got, err)
	}
	if got, err := validateRoundLimit(20, 5, 20); err != nil || got != 20 {
		t.Fatalf("expected max to pass, got %d err %v", got, err)
	}
	if _, err := validateRoundLimit(21, 5, 20); err == nil {
		t.Fatal("expected 21 to be rejected")
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  a   b\t c "); got != "a b c" {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
}
