// Package ui implements the terminal viewer for posts.
package ui

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/format"
	"github.com/charmbracelet/postfmt/utils"
	"github.com/fsnotify/fsnotify"
)

// ErrNoPath is returned when the viewer is started without a post file.
var ErrNoPath = errors.New("no post file given")

// NewProgram returns a new Tea program.
func NewProgram(cfg Config, f *format.Formatter) (*tea.Program, error) {
	log.Debug(
		"Starting postfmt viewer",
		"path", cfg.Path,
		"board", cfg.Board,
		"style", cfg.Style,
		"watch", cfg.Watch,
	)

	m, err := newModel(cfg, f)
	if err != nil {
		return nil, err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(m, opts...), nil
}

// Run opens the viewer on cfg.Path and blocks until the user quits.
func Run(cfg Config, f *format.Formatter) error {
	p, err := NewProgram(cfg, f)
	if err != nil {
		return err
	}
	m, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := m.(model); ok {
		m.close()
		return m.fatalErr
	}
	return nil
}

// MODEL

type model struct {
	common   *commonModel
	pager    pagerModel
	watcher  *fsnotify.Watcher
	fatalErr error
}

func newModel(cfg Config, f *format.Formatter) (model, error) {
	if cfg.Path == "" {
		return model{}, ErrNoPath
	}
	if cfg.Post == "" {
		cfg.Post = utils.PostFromPath(cfg.Path)
	}
	if f == nil {
		f = format.New()
	}

	styles, err := ansi.StyleFor(cfg.Style)
	if err != nil {
		return model{}, fmt.Errorf("unable to load style: %w", err)
	}

	common := &commonModel{
		cfg:    cfg,
		styles: styles,
	}
	return model{
		common: common,
		pager:  newPagerModel(common, f),
	}, nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadFile(m.common.cfg.Path)}
	if m.common.cfg.Watch {
		cmds = append(cmds, startWatcher(m.common.cfg.Path))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.pager.setSize(msg.Width, msg.Height)

	case watcherStartedMsg:
		m.watcher = msg.watcher
		return m, waitForChange(m.watcher, m.common.cfg.Path)

	case fileChangedMsg:
		log.Debug("post changed on disk", "path", m.common.cfg.Path)
		return m, tea.Batch(
			loadFile(m.common.cfg.Path),
			waitForChange(m.watcher, m.common.cfg.Path),
		)

	case fatalErrMsg:
		m.fatalErr = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr)
	}
	return m.pager.View()
}

func (m model) close() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		log.Debug("unable to close watcher", "error", err)
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n%s\n\n%s\n",
		indent(logoStyle.Background(red).Render(" ERROR "), 2),
		indent(lipgloss.NewStyle().Foreground(statusBarFg).Render(err.Error()), 2),
	)
}

// WATCHER

type (
	watcherStartedMsg struct{ watcher *fsnotify.Watcher }
	fatalErrMsg       struct{ err error }
)

// startWatcher watches the post's directory rather than the file itself so
// that editors replacing the file on save are still noticed.
func startWatcher(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return errMsg{fmt.Errorf("unable to watch post: %w", err)}
		}
		if err := w.Add(filepath.Dir(path)); err != nil {
			_ = w.Close()
			return errMsg{fmt.Errorf("unable to watch post: %w", err)}
		}
		return watcherStartedMsg{w}
	}
}

func waitForChange(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	name := filepath.Clean(path)
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return fileChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				log.Error("watcher error", "error", err)
			}
		}
	}
}
