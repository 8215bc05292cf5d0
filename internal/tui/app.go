package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/keyboard"
)

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// App is the Bubble Tea model for a local game.
type App struct {
	grid   *game.Grid
	hints  *keyboard.Hints
	next   game.Dictionary // used from the first reset on, when set
	status string
	width  int
	height int
}

// NewApp wires hints to grid and returns the model.
func NewApp(grid *game.Grid, hints *keyboard.Hints) App {
	grid.Subscribe(hints)
	return App{grid: grid, hints: hints}
}

// WithResetDictionary makes ctrl+r draw from d. Daily games use it so a
// reset gets a fresh word instead of the day's word again.
func (a App) WithResetDictionary(d game.Dictionary) App {
	a.next = d
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			a.status = ""
			if _, err := a.grid.SubmitGuess(); err != nil {
				a.status = submitMessage(err)
			}
		case tea.KeyBackspace:
			a.status = ""
			a.grid.DeleteLetter()
		case tea.KeyCtrlR:
			a.status = ""
			if a.next != nil {
				a.grid.SetDictionary(a.next)
				a.next = nil
			}
			a.grid.Reset()
		case tea.KeyRunes:
			if len(msg.Runes) == 1 {
				if l, ok := game.ParseLetter(msg.Runes[0]); ok {
					a.status = ""
					a.grid.InputLetter(l)
				}
			}
		}
	}
	return a, nil
}

func submitMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrIncompleteRow):
		return "Not enough letters"
	case errors.Is(err, game.ErrInvalidWord):
		return "Not in word list"
	default:
		return err.Error()
	}
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("WORDGRID"))
	b.WriteString("\n")

	for r := range a.grid.Rows() {
		marks := a.grid.Marks(r)
		tiles := make([]string, a.grid.Cols())
		for c := range tiles {
			m := game.MarkUnknown
			if marks != nil {
				m = marks[c]
			}
			tiles[c] = TileStyle(m).Render(strings.ToUpper(a.grid.Cell(r, c).String()))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
		b.WriteString("\n")
	}

	if a.hints.Enabled() {
		b.WriteString("\n")
		for _, row := range keyboardRows {
			keys := make([]string, 0, len(row))
			for _, c := range row {
				l, _ := game.ParseLetter(c)
				keys = append(keys, KeyStyle(a.hints.Status(l), a.hints.Typed(l)).Render(strings.ToUpper(string(c))))
			}
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, keys...))
			b.WriteString("\n")
		}
	}

	if a.status != "" {
		b.WriteString(errorStyle.Render(a.status))
		b.WriteString("\n")
	}

	switch a.grid.State() {
	case game.StateWon:
		b.WriteString(endStyle.Render(fmt.Sprintf("Solved in %d! The word was %s", a.grid.Last().Row+1, strings.ToUpper(a.grid.Answer()))))
		b.WriteString("\n")
	case game.StateLost:
		b.WriteString(endStyle.BorderForeground(colorDanger).Foreground(colorDanger).
			Render("Out of guesses. The word was " + strings.ToUpper(a.grid.Answer())))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("a-z type • backspace delete • enter submit • ctrl+r new word • esc quit"))
	return b.String()
}
