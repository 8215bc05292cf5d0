package words

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestNewNormalizes(t *testing.T) {
	d, err := New(
		[]string{" Crane ", "slate", "toolong", "cr4ne", "crane"},
		[]string{"ROBOT", "abc"},
		5, nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	if a, g := d.Stats(); a != 2 || g != 3 {
		t.Errorf("Stats() = %d, %d, want 2, 3", a, g)
	}
	if !d.IsAnswer("CRANE") || d.IsAnswer("robot") {
		t.Error("IsAnswer mismatch")
	}
}

func TestIsValidGuess(t *testing.T) {
	d, err := New([]string{"crane"}, []string{"robot"}, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		word string
		want bool
	}{
		{"crane", true},
		{"ROBOT", true},
		{"slate", false},
		{"cran", false},
		{"cranes", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := d.IsValidGuess(tt.word); got != tt.want {
				t.Errorf("IsValidGuess(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestNewRequiresAnswers(t *testing.T) {
	if _, err := New([]string{"toolong"}, []string{"crane"}, 5, nil); !errors.Is(err, ErrNoAnswers) {
		t.Errorf("err = %v, want ErrNoAnswers", err)
	}
}

func TestRandomAnswerUsesSource(t *testing.T) {
	answers := []string{"crane", "slate", "robot"}
	var asked []int
	src := SourceFunc(func(n int) int {
		asked = append(asked, n)
		return 2
	})
	d, err := New(answers, nil, 5, src)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.RandomAnswer(); got != "robot" {
		t.Errorf("RandomAnswer() = %q", got)
	}
	if len(asked) != 1 || asked[0] != 3 {
		t.Errorf("source asked %v", asked)
	}

	other := d.WithSource(SourceFunc(func(int) int { return 99 }))
	if got := other.RandomAnswer(); got != "crane" {
		t.Errorf("out-of-range index should fall back to first answer, got %q", got)
	}
	if got := d.RandomAnswer(); got != "robot" {
		t.Error("WithSource changed the original dictionary")
	}
}

func TestCryptoSourceInRange(t *testing.T) {
	var src CryptoSource
	for range 200 {
		if i := src.Intn(7); i < 0 || i >= 7 {
			t.Fatalf("Intn(7) = %d", i)
		}
	}
}

func TestLoadEmbedded(t *testing.T) {
	d, err := Load(context.Background(), LoadOptions{Cols: 5})
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"robot", "speed", "crane"} {
		if !d.IsAnswer(w) {
			t.Errorf("embedded answers missing %q", w)
		}
	}
	for _, w := range []string{"rotor", "erase"} {
		if !d.IsValidGuess(w) {
			t.Errorf("embedded allowed missing %q", w)
		}
	}
	if _, err := Load(context.Background(), LoadOptions{Cols: 6}); !errors.Is(err, ErrNoAnswers) {
		t.Errorf("6-letter load err = %v, want ErrNoAnswers", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	if err := os.WriteFile(answers, []byte("# answers\nCRANE\n\nslate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(allowed, []byte("robot\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(context.Background(), LoadOptions{Cols: 5, AnswersFile: answers, AllowedFile: allowed})
	if err != nil {
		t.Fatal(err)
	}
	if a, g := d.Stats(); a != 2 || g != 3 {
		t.Errorf("both files: Stats() = %d, %d", a, g)
	}

	d, err = Load(context.Background(), LoadOptions{Cols: 5, AllowedFile: allowed})
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsAnswer("robot") {
		t.Error("allowed-only load should use the allowed list for answers")
	}

	if _, err := Load(context.Background(), LoadOptions{Cols: 5, AllowedFile: filepath.Join(dir, "missing")}); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadSQL(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE answers (word TEXT PRIMARY KEY);
		CREATE TABLE allowed (word TEXT PRIMARY KEY);
		INSERT INTO answers(word) VALUES ('crane'), ('Speed');
		INSERT INTO allowed(word) VALUES ('erase'), ('rotor');`)
	if err != nil {
		t.Fatal(err)
	}

	d, err := Load(context.Background(), LoadOptions{Cols: 5, DB: db})
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsAnswer("speed") || !d.IsValidGuess("erase") || d.IsAnswer("erase") {
		t.Error("sql lists not loaded as expected")
	}
}
