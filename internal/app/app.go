// Package app wires the screens, router, and layout into the root Bubble
// Tea model.
package app

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bilimpath/bilim/internal/api"
	"github.com/bilimpath/bilim/internal/router"
	"github.com/bilimpath/bilim/internal/screen"
	"github.com/bilimpath/bilim/internal/screens/role"
	"github.com/bilimpath/bilim/internal/screens/subjects"
	"github.com/bilimpath/bilim/internal/session"
	"github.com/bilimpath/bilim/internal/store"
	"github.com/bilimpath/bilim/internal/ui/layout"
)

// Options are the dependencies shared by every screen.
type Options struct {
	API      *api.Client
	Sessions store.SessionRepo
	Attempts store.AttemptRepo
	Session  *session.Session
	Log      *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel picks the initial screen: straight to subjects when a stored
// session is present, role selection otherwise.
func newAppModel(opts Options) AppModel {
	var initial screen.Screen
	if opts.Session.Valid() {
		initial = subjects.New(opts.API, opts.Sessions, opts.Attempts, opts.Session, opts.Log)
	} else {
		initial = role.New(opts.API, opts.Sessions, opts.Attempts, opts.Session, opts.Log)
	}
	return AppModel{
		opts:   opts,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case session.ExpiredMsg:
		m.opts.Session.Clear()
		fresh := role.New(m.opts.API, m.opts.Sessions, m.opts.Attempts, m.opts.Session, m.opts.Log)
		return m, m.router.Reset(fresh)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ei, ok := m.router.Active().(screen.EscInterceptor); ok && ei.InterceptsEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	roleLabel := ""
	if m.opts.Session.Valid() {
		roleLabel = string(m.opts.Session.Role)
	}
	header := layout.RenderHeader(title, roleLabel, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	return err
}
