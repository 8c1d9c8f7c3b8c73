package gamemaster

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	game    *HumanGame
	colored bool
	message string
	err     error // Fatal, ends the program
}

func newModel(g *HumanGame, colored bool) model {
	return model{game: g, colored: colored}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	column, err := ParseColumn(key.String())
	if err != nil {
		m.message = ErrInvalidColumn.Error()
		return m, nil
	}

	if !m.game.Board().IsLegalMove(column) {
		m.message = fmt.Sprintf("Column %d is full", column)
		return m, nil
	}

	status, err := m.game.Move(column)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	if status.Terminal() {
		m.message = "Game complete: " + status.String()
		return m, tea.Quit
	}
	m.message = fmt.Sprintf("Bot moved at: %d", m.game.LastBotMove())
	return m, nil
}

func (m model) View() string {
	s := fmt.Sprintf("You are: %s (%s)\n", m.game.Human(), m.game.Bot().Description())
	s += Render(m.game.Board(), m.colored) + "\n"
	if m.message != "" {
		s += m.message + "\n"
	}
	if m.err != nil {
		s += "Error: " + m.err.Error() + "\n"
	}
	if !m.game.Over() && m.err == nil {
		s += "\nPress 0-6 to play, q to quit.\n"
	}
	return s
}

// RunConsole plays g interactively on the terminal until it is decided or
// the human quits.
func RunConsole(g *HumanGame, colored bool) error {
	final, err := tea.NewProgram(newModel(g, colored)).Run()
	if err != nil {
		return fmt.Errorf("console failed: %w", err)
	}
	return final.(model).err
}
