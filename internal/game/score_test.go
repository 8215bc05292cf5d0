package game

import (
	"reflect"
	"strings"
	"testing"
)

const (
	E = MarkExact
	P = MarkPresent
	A = MarkAbsent
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		guess  string
		want   []Mark
	}{
		{"all exact", "crane", "crane", []Mark{E, E, E, E, E}},
		{"all absent", "crane", "moldy", []Mark{A, A, A, A, A}},
		{"repeated letters both sides", "robot", "rotor", []Mark{E, E, P, E, A}},
		{"two e in answer", "speed", "erase", []Mark{P, A, A, P, P}},
		{"exact claims before present", "abbey", "babes", []Mark{P, P, E, E, A}},
		{"guess has more copies than answer", "crane", "eerie", []Mark{A, A, P, A, E}},
		{"extra copies absent", "lever", "eeeee", []Mark{A, E, A, E, A}},
		{"rearranged", "least", "slate", []Mark{P, P, E, P, P}},
		{"present and exact same letter", "apple", "paper", []Mark{P, P, E, P, A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.answer, tt.guess); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.answer, tt.guess, got, tt.want)
			}
		})
	}
}

func TestScoreNeverOverReports(t *testing.T) {
	words := []string{"robot", "rotor", "speed", "erase", "eerie", "geese", "abbey", "babes", "llama", "allay", "crane", "nanny"}
	for _, answer := range words {
		for _, guess := range words {
			marks := Score(answer, guess)
			claimed := map[byte]int{}
			for i, m := range marks {
				if m == MarkExact || m == MarkPresent {
					claimed[guess[i]]++
				}
				if (m == MarkExact) != (guess[i] == answer[i]) {
					t.Errorf("Score(%q, %q)[%d] = %v", answer, guess, i, m)
				}
			}
			for c, n := range claimed {
				if have := strings.Count(answer, string(c)); n > have {
					t.Errorf("Score(%q, %q) claims %d %q, answer has %d", answer, guess, n, c, have)
				}
			}
		}
	}
}
