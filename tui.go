package main

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Mbongaa/Jamaa-Shifa/caption"
	"github.com/Mbongaa/Jamaa-Shifa/feed"
	"github.com/Mbongaa/Jamaa-Shifa/log"
	"github.com/Mbongaa/Jamaa-Shifa/prefs"
)

// TUI message types
type LinesMsg struct{ Entries []caption.Entry }
type WordsMsg struct{ Entries []caption.Entry }
type ConnStateMsg struct {
	State feed.State
	Label string
}
type StatusMsg struct{ Text string }
type layoutCheckMsg struct{}

// layoutSettle is how long a words burst must quiet down before the
// overflow check runs against the settled view.
const layoutSettle = 50 * time.Millisecond

// tuiSink bridges engine callbacks into the Bubble Tea program. Safe to
// use before attach; events are dropped until the program exists.
type tuiSink struct {
	mu       sync.Mutex
	p        *tea.Program
	debounce func(func())
}

func newTUISink() *tuiSink {
	return &tuiSink{debounce: debounce.New(layoutSettle)}
}

func (s *tuiSink) attach(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *tuiSink) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s *tuiSink) LinesChanged(entries []caption.Entry) {
	s.send(LinesMsg{Entries: entries})
}

func (s *tuiSink) WordsChanged(entries []caption.Entry) {
	s.send(WordsMsg{Entries: entries})
	// Render the new word first, measure once the burst settles.
	s.debounce(func() { s.send(layoutCheckMsg{}) })
}

func (s *tuiSink) ConnectionState(state feed.State, label string) {
	s.send(ConnStateMsg{State: state, Label: label})
}

func (s *tuiSink) Status(text string) {
	s.send(StatusMsg{Text: text})
}

type tuiModel struct {
	width, height int
	lines         []caption.Entry
	words         []caption.Entry
	state         feed.State
	stateLabel    string
	status        string
	prefs         prefs.Prefs
	prefsPath     string
	wordBuf       *caption.WordBuffer
	conn          *feed.Conn
}

func newTUIModel(pf prefs.Prefs, prefsPath string, wordBuf *caption.WordBuffer, conn *feed.Conn) tuiModel {
	return tuiModel{
		prefs:     pf,
		prefsPath: prefsPath,
		wordBuf:   wordBuf,
		conn:      conn,
		state:     feed.Idle,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// A resize changes the container; re-judge overflow.
		return m, func() tea.Msg { return layoutCheckMsg{} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "t":
			m.prefs.ShowTranscript = !m.prefs.ShowTranscript
			m.savePrefs()
		case "d":
			if m.prefs.Theme == "dark" {
				m.prefs.Theme = "light"
			} else {
				m.prefs.Theme = "dark"
			}
			m.savePrefs()
		case "r":
			if m.conn != nil {
				m.conn.NudgeReconnect()
			}
		}

	case LinesMsg:
		m.lines = msg.Entries

	case WordsMsg:
		m.words = msg.Entries

	case layoutCheckMsg:
		m.checkOverflow()

	case ConnStateMsg:
		m.state = msg.State
		m.stateLabel = msg.Label
		m.status = ""

	case StatusMsg:
		m.status = msg.Text
	}
	return m, nil
}

func (m tuiModel) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Warnf("prefs save failed: %v", err)
	}
}

// checkOverflow is the deferred half of the two-phase append protocol:
// the optimistic render already happened, so measure it and collapse
// the word run if it outgrew the panel.
func (m tuiModel) checkOverflow() {
	if m.wordBuf == nil || !m.prefs.ShowTranscript || m.width == 0 {
		return
	}
	joined, waiting := joinWords(m.words)
	if waiting {
		return
	}
	if caption.ShouldCollapse(runewidth.StringWidth(joined), m.wordPanelWidth()) {
		m.wordBuf.CollapseToLast() // the sink delivers the collapsed view
	}
}

func (m tuiModel) wordPanelWidth() int {
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

func joinWords(entries []caption.Entry) (joined string, waiting bool) {
	if len(entries) == 1 && entries[0].Waiting {
		return entries[0].Text, true
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	return strings.Join(texts, " "), false
}

// opacityGray maps an opacity onto the terminal grayscale ramp. A
// terminal cannot scale glyphs, so fading carries most of the decay law
// and the newest line gets bold instead of 1.6x type.
func opacityGray(op float64, theme string) string {
	if op < 0 {
		op = 0
	}
	if op > 1 {
		op = 1
	}
	if theme == "light" {
		return strconv.Itoa(255 - int(op*23+0.5))
	}
	return strconv.Itoa(232 + int(op*23+0.5))
}

var stateColors = map[feed.State]string{
	feed.Idle:         "241",
	feed.Connecting:   "220",
	feed.Connected:    "42",
	feed.Disconnected: "196",
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footer := 1 // status line
	if m.prefs.ShowTranscript {
		footer += 2 // blank spacer + transcript line
	}

	maxLines := m.height - footer
	if maxLines < 1 {
		maxLines = 1
	}

	var rows []string
	for i, e := range m.lines {
		if i >= maxLines {
			break
		}
		rows = append(rows, m.renderLine(e))
	}
	for len(rows) < m.height-footer {
		rows = append(rows, "")
	}

	if m.prefs.ShowTranscript {
		rows = append(rows, "", m.renderTranscript())
	}
	rows = append(rows, m.renderStatus())

	return strings.Join(rows, "\n")
}

func (m tuiModel) renderLine(e caption.Entry) string {
	st := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(opacityGray(e.Opacity, m.prefs.Theme)))
	if e.Waiting {
		st = st.Italic(true)
	} else if e.Scale >= 1.3 {
		st = st.Bold(true)
	}
	return st.Render(runewidth.Truncate(e.Text, m.width, "…"))
}

func (m tuiModel) renderTranscript() string {
	joined, waiting := joinWords(m.words)
	st := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(opacityGray(0.6, m.prefs.Theme)))
	if waiting {
		st = st.Italic(true)
	}
	return st.Render(runewidth.Truncate(joined, m.wordPanelWidth(), "…"))
}

func (m tuiModel) renderStatus() string {
	dot := lipgloss.NewStyle().
		Foreground(lipgloss.Color(stateColors[m.state])).
		Render("●")
	label := m.stateLabel
	if label == "" {
		label = m.state.String()
	}
	text := dot + " " + label
	if m.status != "" {
		text += "  " + m.status
	}
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("239")).
		Render("t transcript · d theme · r reconnect · q quit")
	gap := m.width - lipgloss.Width(text) - lipgloss.Width(help)
	if gap < 1 {
		return runewidth.Truncate(text, m.width, "…")
	}
	return text + strings.Repeat(" ", gap) + help
}
