// Package home is the landing screen: a dashboard with the study streak
// and a menu of materials to take a quiz on.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/quiz"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Material is a menu entry.
type Material struct {
	ID   string
	Name string
}

// Config wires the home screen.
type Config struct {
	Materials []Material

	// Open returns the quizzer for a material ID.
	Open func(materialID string) (quiz.Quizzer, error)

	Count int
	Type  string

	// Streak is the number of consecutive study days.
	Streak int

	// Autostart opens a quiz on this material ID as soon as the screen starts.
	Autostart string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	cfg    Config
	menu   components.Menu
	labels []string
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(cfg Config) *HomeScreen {
	h := &HomeScreen{cfg: cfg}

	items := make([]components.MenuItem, 0, len(cfg.Materials)+1)
	for _, m := range cfg.Materials {
		items = append(items, components.MenuItem{Label: m.Name, Action: func() tea.Cmd {
			return h.start(m)
		}})
		h.labels = append(h.labels, m.Name)
	}
	items = append(items, components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
		return tea.Quit
	}})
	h.labels = append(h.labels, "QUIT")

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.cfg.Autostart == "" {
		return nil
	}
	for i, m := range h.cfg.Materials {
		if m.ID == h.cfg.Autostart {
			h.menu.Selected = i
			return h.start(m)
		}
	}
	return nil
}

// start opens the material and pushes a quiz screen for it.
func (h *HomeScreen) start(m Material) tea.Cmd {
	if h.cfg.Open == nil {
		h.errMsg = "Quizzes are unavailable."
		return nil
	}
	q, err := h.cfg.Open(m.ID)
	if err != nil {
		h.errMsg = fmt.Sprintf("Could not open %q: %v", m.Name, err)
		return nil
	}
	h.errMsg = ""
	s := quiz.New(q, m.Name, h.cfg.Count, h.cfg.Type)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderMascot(mascotFor(h.cfg.Streak, len(h.cfg.Materials)))))
	}
	sections = append(sections, renderStatsBar(h.cfg.Streak, len(h.cfg.Materials), cw))

	if len(h.cfg.Materials) == 0 {
		sections = append(sections, renderEmptyHint(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.labels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(h.errMsg))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
