package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bimakw/wallet-console/internal/application/formatters"
)

const (
	// Title is typed into the console header on start
	Title = "WalletConnect & Moralis APIs"
	// SearchPlaceholder is shown in an empty search line
	SearchPlaceholder = "Write ETH address"
)

var (
	colorRed    = lipgloss.Color("#ff5f56")
	colorYellow = lipgloss.Color("#ffbd2e")
	colorGreen  = lipgloss.Color("#27c93f")
	colorMuted  = lipgloss.Color("240")

	titleStyle       = lipgloss.NewStyle().Bold(true)
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	stateStyle       = lipgloss.NewStyle().Foreground(colorMuted)
)

// Screen is everything drawn in one console frame
type Screen struct {
	Title  string
	Tabs   []formatters.Tab
	Active formatters.Tab
	Body   string
	Search string
	State  string
	// Green expands the body to its full height and turns the frame green
	Green  bool
	Width  int
	Height int
}

// Render draws the console frame
func Render(s Screen) string {
	width := s.Width
	if width < 40 {
		width = 40
	}

	dots := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(colorRed).Render("●"), " ",
		lipgloss.NewStyle().Foreground(colorYellow).Render("●"), " ",
		lipgloss.NewStyle().Foreground(colorGreen).Render("●"),
	)
	header := dots + "  " + titleStyle.Render(s.Title)

	tabs := make([]string, 0, len(s.Tabs))
	for _, tab := range s.Tabs {
		if tab == s.Active {
			tabs = append(tabs, activeTabStyle.Render(string(tab)))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(string(tab)))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	body := s.Body
	if !s.Green && s.Height > 0 {
		body = clip(body, s.Height)
	}

	search := placeholderStyle.Render(SearchPlaceholder)
	if s.Search != "" {
		search = s.Search
	}
	footer := "> " + search
	if s.State != "" {
		footer += "  " + stateStyle.Render("["+s.State+"]")
	}

	border := colorMuted
	if s.Green {
		border = colorGreen
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2)

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		bar,
		"",
		body,
		"",
		footer,
	))
}

// clip keeps the first n lines of text
func clip(text string, n int) string {
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
