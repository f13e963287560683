package ui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/format"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

const (
	statusBarHeight      = 1
	statusMessageTimeout = time.Second * 3
)

var pagerHelpHeight int

type (
	contentRenderedMsg string
	fileLoadedMsg      struct {
		body    string
		modTime time.Time
	}
	fileChangedMsg          struct{}
	statusMessageTimeoutMsg struct{}
	errMsg                  struct{ err error }
)

func (e errMsg) Error() string { return e.err.Error() }

type statusMessageKind int

const (
	normalStatusMessage statusMessageKind = iota
	errorStatusMessage
)

type statusMessage struct {
	kind    statusMessageKind
	message string
}

// commonModel holds state shared between the viewer's components.
type commonModel struct {
	cfg    Config
	styles ansi.StyleConfig
	width  int
	height int
}

type pagerModel struct {
	common    *commonModel
	viewport  viewport.Model
	formatter *format.Formatter
	showHelp  bool

	statusMessage      *statusMessage
	statusMessageTimer *time.Timer

	// Raw post body and its file modification time. Kept so the post can be
	// re-rendered on resize and on spoiler changes.
	body    string
	modTime time.Time
}

func newPagerModel(common *commonModel, f *format.Formatter) pagerModel {
	vp := viewport.New(0, 0)
	vp.YPosition = 0
	vp.MouseWheelEnabled = common.cfg.EnableMouse
	// h hides spoilers, so horizontal scrolling stays off.
	vp.KeyMap.Left.SetEnabled(false)
	vp.KeyMap.Right.SetEnabled(false)

	return pagerModel{
		common:    common,
		viewport:  vp,
		formatter: f,
	}
}

func (m *pagerModel) setSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h - statusBarHeight

	if m.showHelp {
		if pagerHelpHeight == 0 {
			pagerHelpHeight = strings.Count(m.helpView(), "\n")
		}
		m.viewport.Height -= (statusBarHeight + pagerHelpHeight)
	}
}

func (m *pagerModel) setContent(s string) {
	m.viewport.SetContent(s)
}

func (m *pagerModel) toggleHelp() {
	m.showHelp = !m.showHelp
	m.setSize(m.common.width, m.common.height)
	if m.viewport.PastBottom() {
		m.viewport.GotoBottom()
	}
}

func (m *pagerModel) showStatusMessage(msg statusMessage) tea.Cmd {
	m.statusMessage = &msg
	if m.statusMessageTimer != nil {
		m.statusMessageTimer.Stop()
	}
	m.statusMessageTimer = time.NewTimer(statusMessageTimeout)

	return waitForStatusMessageTimeout(m.statusMessageTimer)
}

func (m pagerModel) spoilerCount() int {
	return format.CountSpoilers(m.body)
}

func (m pagerModel) Update(msg tea.Msg) (pagerModel, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	registry := m.formatter.Registry()
	post := m.common.cfg.Post

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			index := int(key[0] - '0')
			if index > m.spoilerCount() {
				break
			}
			state := "hidden"
			if registry.Toggle(post, index) {
				state = "revealed"
			}
			cmds = append(cmds,
				m.showStatusMessage(statusMessage{normalStatusMessage, fmt.Sprintf("Spoiler %d %s", index, state)}),
				renderPost(m),
			)
		case "r":
			registry.RevealAll(post, m.spoilerCount())
			cmds = append(cmds,
				m.showStatusMessage(statusMessage{normalStatusMessage, "Revealed all spoilers"}),
				renderPost(m),
			)
		case "h":
			registry.HideAll(post)
			cmds = append(cmds,
				m.showStatusMessage(statusMessage{normalStatusMessage, "Hid all spoilers"}),
				renderPost(m),
			)
		case "c":
			cmds = append(cmds, copyToClipboard(format.PlainText(m.body)))
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		case "?":
			m.toggleHelp()
		}

	case fileLoadedMsg:
		m.body = msg.body
		m.modTime = msg.modTime
		cmds = append(cmds, renderPost(m))

	case contentRenderedMsg:
		m.setContent(string(msg))

	case statusMessage:
		cmds = append(cmds, m.showStatusMessage(msg))

	case errMsg:
		log.Error("viewer error", "error", msg.err)
		cmds = append(cmds, m.showStatusMessage(statusMessage{errorStatusMessage, msg.Error()}))

	// We've received terminal dimensions, either for the first time or
	// after a resize
	case tea.WindowSizeMsg:
		return m, renderPost(m)

	case statusMessageTimeoutMsg:
		m.statusMessage = nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m pagerModel) View() string {
	var b strings.Builder
	fmt.Fprint(&b, m.viewport.View()+"\n")
	m.statusBarView(&b)

	if m.showHelp {
		fmt.Fprint(&b, "\n"+m.helpView())
	}

	return b.String()
}

func (m pagerModel) statusBarView(b *strings.Builder) {
	const (
		minPercent               float64 = 0.0
		maxPercent               float64 = 1.0
		percentToStringMagnitude float64 = 100.0
	)

	logo := logoStyle.Render(" postfmt ")

	board := ""
	if m.common.cfg.Board != "" {
		board = statusBarBoardStyle(" /" + m.common.cfg.Board + "/")
	}

	percent := math.Max(minPercent, math.Min(maxPercent, m.viewport.ScrollPercent()))
	scrollPercent := statusBarScrollPosStyle(fmt.Sprintf(" %3.f%% ", percent*percentToStringMagnitude))
	helpNote := statusBarHelpStyle(" ? Help ")

	style := statusBarNoteStyle
	var note string
	if m.statusMessage != nil {
		note = m.statusMessage.message
		style = statusBarMessageStyle
		if m.statusMessage.kind == errorStatusMessage {
			style = statusBarErrorStyle
		}
	} else {
		note = m.postSummary()
	}

	fixed := lipgloss.Width(logo) + lipgloss.Width(board) +
		lipgloss.Width(scrollPercent) + lipgloss.Width(helpNote)
	note = truncate.StringWithTail(" "+note+" ", uint(max(0, m.common.width-fixed)), "…")
	padding := max(0, m.common.width-fixed-lipgloss.Width(note))

	fmt.Fprintf(b, "%s%s%s%s%s%s",
		logo,
		board,
		style(note),
		style(strings.Repeat(" ", padding)),
		scrollPercent,
		helpNote,
	)
}

// postSummary describes the post for the status bar.
func (m pagerModel) postSummary() string {
	parts := []string{"post " + m.common.cfg.Post}
	switch n := m.spoilerCount(); n {
	case 0:
	case 1:
		parts = append(parts, "1 spoiler")
	default:
		parts = append(parts, fmt.Sprintf("%d spoilers", n))
	}
	if !m.modTime.IsZero() {
		parts = append(parts, "modified "+relativeTime(m.modTime))
	}
	return strings.Join(parts, " · ")
}

func (m pagerModel) helpView() (s string) {
	s += "k/↑      up                  1-9     toggle spoiler\n"
	s += "j/↓      down                r       reveal all spoilers\n"
	s += "b/pgup   page up             h       hide all spoilers\n"
	s += "f/pgdn   page down           c       copy text\n"
	s += "g/home   go to top           ?       close help\n"
	s += "G/end    go to bottom        q       quit"

	s = indent(s, 2)

	// Fill up empty cells with spaces for background coloring
	if m.common.width > 0 {
		lines := strings.Split(s, "\n")
		for i := range lines {
			n := max(m.common.width-runewidth.StringWidth(lines[i]), 0)
			lines[i] += strings.Repeat(" ", n)
		}
		s = strings.Join(lines, "\n")
	}

	return helpViewStyle(s)
}

// COMMANDS

func waitForStatusMessageTimeout(t *time.Timer) tea.Cmd {
	return func() tea.Msg {
		<-t.C
		return statusMessageTimeoutMsg{}
	}
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		b, err := os.ReadFile(path)
		if err != nil {
			return fatalErrMsg{fmt.Errorf("unable to read post: %w", err)}
		}
		var modTime time.Time
		if fi, err := os.Stat(path); err == nil {
			modTime = fi.ModTime()
		}
		return fileLoadedMsg{body: string(b), modTime: modTime}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg{fmt.Errorf("unable to copy: %w", err)}
		}
		return statusMessage{normalStatusMessage, "Copied contents"}
	}
}

func renderPost(m pagerModel) tea.Cmd {
	return func() tea.Msg {
		s, err := postRender(m)
		if err != nil {
			return errMsg{err}
		}
		return contentRenderedMsg(s)
	}
}

// postRender formats the post and draws it at the viewport's width.
func postRender(m pagerModel) (string, error) {
	cfg := m.common.cfg
	segs := m.formatter.FormatText(m.body, cfg.Board, cfg.Post, cfg.RevealAll)

	width := m.viewport.Width
	if cfg.MaxWidth > 0 {
		width = min(int(cfg.MaxWidth), width)
	}

	profile := lipgloss.ColorProfile()
	if cfg.Style == ansi.NoTTYStyle {
		profile = termenv.Ascii
	}
	r, err := ansi.NewRenderer(ansi.Options{
		WordWrap:     max(0, width),
		Styles:       m.common.styles,
		ColorProfile: profile,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(r.Render(segs), "\n"), nil
}

// ETC

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
