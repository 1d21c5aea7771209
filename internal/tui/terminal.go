package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/erikdevelopment/portfolio/internal/domain"
)

// Animation delays of the scripted terminal.
const (
	CharDelay    = 60 * time.Millisecond
	OutputDelay  = 300 * time.Millisecond
	CommandDelay = 600 * time.Millisecond
)

var promptStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

type phase int

const (
	phaseTyping phase = iota
	phaseOutput
	phaseNext
	phaseDone
)

type terminalTickMsg struct{}

// Terminal types each scripted command character by character, then prints its
// output and moves on to the next command.
type Terminal struct {
	prompt  string
	entries []domain.TerminalEntry
	quit    bool

	index int
	typed int
	phase phase
	lines []string
}

// NewTerminal creates a terminal that plays entries in order. When quitWhenDone is
// set the program exits after the last entry.
func NewTerminal(prompt string, entries []domain.TerminalEntry, quitWhenDone bool) Terminal {
	t := Terminal{prompt: prompt, entries: entries, quit: quitWhenDone}
	if len(entries) == 0 {
		t.phase = phaseDone
	}
	return t
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return terminalTickMsg{} })
}

// Init schedules the first character.
func (t Terminal) Init() tea.Cmd {
	if t.phase == phaseDone {
		return t.finish()
	}
	return tick(CharDelay)
}

func (t Terminal) finish() tea.Cmd {
	if t.quit {
		return tea.Quit
	}
	return nil
}

// Done reports whether every entry has been played.
func (t Terminal) Done() bool {
	return t.phase == phaseDone
}

// Update advances the animation by one step per tick.
func (t Terminal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return t, tea.Quit
		}
		return t, nil

	case terminalTickMsg:
		return t.step()
	}
	return t, nil
}

func (t Terminal) step() (tea.Model, tea.Cmd) {
	switch t.phase {
	case phaseTyping:
		cmd := []rune(t.entries[t.index].Cmd)
		if t.typed < len(cmd) {
			t.typed++
			if t.typed < len(cmd) {
				return t, tick(CharDelay)
			}
		}
		t.phase = phaseOutput
		return t, tick(OutputDelay)

	case phaseOutput:
		entry := t.entries[t.index]
		t.lines = append(t.lines, t.prompt+" "+entry.Cmd)
		if entry.Out != "" {
			t.lines = append(t.lines, strings.Split(entry.Out, "\n")...)
		}
		t.phase = phaseNext
		return t, tick(CommandDelay)

	case phaseNext:
		t.index++
		t.typed = 0
		if t.index >= len(t.entries) {
			t.phase = phaseDone
			return t, t.finish()
		}
		t.phase = phaseTyping
		return t, tick(CharDelay)
	}
	return t, nil
}

// View renders the finished lines followed by the command being typed.
func (t Terminal) View() string {
	var b strings.Builder
	for _, line := range t.lines {
		if rest, ok := strings.CutPrefix(line, t.prompt+" "); ok {
			b.WriteString(promptStyle.Render(t.prompt))
			b.WriteString(" " + rest + "\n")
			continue
		}
		b.WriteString(line + "\n")
	}
	if t.phase == phaseTyping || t.phase == phaseOutput {
		cmd := []rune(t.entries[t.index].Cmd)
		b.WriteString(promptStyle.Render(t.prompt))
		b.WriteString(" " + string(cmd[:t.typed]) + "█\n")
	}
	return b.String()
}

// Lines returns the lines printed so far.
func (t Terminal) Lines() []string {
	return t.lines
}
