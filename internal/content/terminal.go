package content

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/erikdevelopment/portfolio/internal/domain"
)

// DateTimeLayout formats the output of the scripted "date" command.
const DateTimeLayout = "02.01.2006, 15:04:05"

var defaultScript = []domain.TerminalEntry{
	{Cmd: "whoami", Out: "Erik – Full-Stack Developer from Germany 🇩🇪"},
	{Cmd: "pwd", Out: "/home/erik/portfolio"},
	{Cmd: "ls", Out: "projects  skills  blog  contact  README.md"},
	{Cmd: "cat README.md", Out: "Hi 👋 I'm Erik. I build modern web apps, APIs and automations."},
	{Cmd: "skills", Out: "JavaScript, TypeScript, React, Python, Docker, Linux, SQL"},
	{Cmd: "stack", Out: "Frontend: React | Backend: Node.js, Python | DB: PostgreSQL, MongoDB"},
	{Cmd: "cat projects.txt", Out: "APIs, Dashboards, Discord Bots, Web Apps, Automations"},
	{Cmd: "git status", Out: "On branch main\nYour portfolio is clean ✔️"},
	{Cmd: "git log --oneline", Out: "a1c3d9f initial commit\nb7f4e21 add console\nc9e8a33 polish UI"},
	{Cmd: "docker ps", Out: "portfolio_app   running   0.0.0.0:3000->3000"},
	{Cmd: "npm run build", Out: "✔ Build successful\n✔ No errors found"},
	{Cmd: "npm test", Out: "All tests passed ✔️"},
	{Cmd: "uptime", Out: "up 365 days, 24/7 learning mode 🚀"},
	{Cmd: "neofetch", Out: "OS: Developer OS\nShell: zsh\nEditor: VS Code\nTheme: Dark + Neon"},
	{Cmd: `echo "coffein --level"`, Out: "☕☕☕☕☕ (critical)"},
	{Cmd: "sudo rm -rf /", Out: "Permission denied 😈 nice try"},
	{Cmd: "ping google.com", Out: "pong 🏓 internet is alive"},
	{Cmd: "fortune", Out: "Talk is cheap. Show me the code. – Linus Torvalds"},
	{Cmd: "date"},
	{Cmd: `echo "Open for freelance"`, Out: "Yes. Let's build something cool 💚"},
	{Cmd: "exit", Out: "Session closed. Thanks for visiting 👋"},
}

// DefaultScript returns a copy of the built-in terminal script.
func DefaultScript() []domain.TerminalEntry {
	return append([]domain.TerminalEntry(nil), defaultScript...)
}

// LoadScript reads a terminal.json file holding [{"cmd": ..., "out": ...}].
func LoadScript(path string) ([]domain.TerminalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal script: %w", err)
	}
	var entries []domain.TerminalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode terminal script: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("terminal script %s is empty", path)
	}
	return entries, nil
}

// ResolveScript fills in outputs that depend on the time of rendering.
func ResolveScript(entries []domain.TerminalEntry, now time.Time) []domain.TerminalEntry {
	out := make([]domain.TerminalEntry, len(entries))
	for i, e := range entries {
		if e.Cmd == "date" && e.Out == "" {
			e.Out = now.Format(DateTimeLayout)
		}
		out[i] = e
	}
	return out
}
