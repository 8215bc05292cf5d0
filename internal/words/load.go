package words

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/assets"
)

// LoadOptions selects where word lists come from.
//
// Precedence:
//  1. DB set: read the answers and allowed tables (see LoadSQL).
//  2. AnswersFile and AllowedFile both set: one list from each.
//  3. Only AllowedFile set: that file is used for both lists.
//  4. Otherwise the embedded defaults from the assets package.
type LoadOptions struct {
	Cols        int
	DB          *sql.DB
	AnswersFile string
	AllowedFile string
	Source      Source
}

// Load reads word lists according to opts and builds a Dictionary.
func Load(ctx context.Context, opts LoadOptions) (*Dictionary, error) {
	var (
		ansList, allowList []string
		from               string
		err                error
	)

	switch {
	case opts.DB != nil:
		from = "sql"
		ansList, allowList, err = LoadSQL(ctx, opts.DB)

	case opts.AnswersFile != "" && opts.AllowedFile != "":
		from = "files"
		if ansList, err = readWordFile(opts.AnswersFile); err == nil {
			allowList, err = readWordFile(opts.AllowedFile)
		}

	case opts.AllowedFile != "":
		from = "allowed file"
		allowList, err = readWordFile(opts.AllowedFile)
		ansList = allowList

	default:
		from = "embedded"
		if ansList, err = readEmbedded(assets.AnswersFile); err == nil {
			allowList, err = readEmbedded(assets.AllowedFile)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("words: load %s: %w", from, err)
	}

	d, err := New(ansList, allowList, opts.Cols, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("words: load %s: %w", from, err)
	}
	a, g := d.Stats()
	log.Info().Str("from", from).Int("answers", a).Int("allowed", g).Int("cols", opts.Cols).Msg("word lists loaded")
	return d, nil
}

// LoadSQL reads the answers(word) and allowed(word) tables. Works with any
// database/sql driver; words are normalized later by New.
func LoadSQL(ctx context.Context, db *sql.DB) (answers, allowed []string, err error) {
	if answers, err = queryWords(ctx, db, `SELECT word FROM answers`); err != nil {
		return nil, nil, err
	}
	if allowed, err = queryWords(ctx, db, `SELECT word FROM allowed`); err != nil {
		return nil, nil, err
	}
	return answers, allowed, nil
}

func queryWords(ctx context.Context, db *sql.DB, q string) ([]string, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

func readEmbedded(name string) ([]string, error) {
	f, err := assets.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines splits r into trimmed lowercase lines, skipping blanks and
// '#' comments.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}
