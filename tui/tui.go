// Package tui is the interactive Bubble Tea front end: the room map, a side
// panel with vitals and inventory, and the chat log with its input line.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/dragonsrealm/engine"
	"github.com/nathoo/dragonsrealm/input"
	"github.com/nathoo/dragonsrealm/meta"
	"github.com/nathoo/dragonsrealm/render"
	"github.com/nathoo/dragonsrealm/types"
)

const (
	tickInterval = 100 * time.Millisecond
	chatLimit    = 140
	minChat      = 3
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// keyMap adds the screen bindings to the gameplay ones.
type keyMap struct {
	input.KeyMap
	Chat    key.Binding
	Command key.Binding
	Prev    key.Binding
	Next    key.Binding
	Use     key.Binding
	Drop    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		KeyMap:  input.DefaultKeyMap(),
		Chat:    key.NewBinding(key.WithKeys("enter", "t"), key.WithHelp("t/enter", "chat")),
		Command: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Prev:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev item")),
		Next:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next item")),
		Use:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use")),
		Drop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "drop")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Pickup, k.Chat, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(),
		[]key.Binding{k.Prev, k.Next, k.Use, k.Drop},
		[]key.Binding{k.Chat, k.Command, k.Help, k.Quit},
	)
}

// viewportKeyMap keeps only paging so up/down stay free for input history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	ctx      context.Context
	engine   *engine.Engine
	meta     *meta.Handler
	dispatch *input.Dispatcher
	keys     keyMap
	help     help.Model

	chat    viewport.Model
	input   textinput.Model
	history *History

	// notices holds the reply to the last slash command plus trace lines.
	// Engine command outputs are already in the chat log as system lines.
	notices []string

	selected int
	chatting bool
	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a model wired to eng. h may be nil, in which case a handler
// without tracing is used.
func New(ctx context.Context, eng *engine.Engine, h *meta.Handler) Model {
	if h == nil {
		h = &meta.Handler{Engine: eng}
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "press t to chat"
	ti.CharLimit = chatLimit
	ti.PromptStyle = styleInputPrompt

	return Model{
		ctx:      ctx,
		engine:   eng,
		meta:     h,
		dispatch: input.NewDispatcher(eng),
		keys:     defaultKeyMap(),
		help:     help.New(),
		chat:     viewport.New(0, 0),
		input:    ti,
		history:  NewHistory(100),
	}
}

// Run starts the program and blocks until the player quits.
func Run(ctx context.Context, eng *engine.Engine, h *meta.Handler) error {
	p := tea.NewProgram(New(ctx, eng, h), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init starts the animation tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// Update handles key presses, resizes and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.chat.KeyMap = viewportKeyMap()
			m.ready = true
		}
		m.refreshChat()
		return m, nil

	case tickMsg:
		m.refreshChat()
		return m, tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.chatting {
			return m.updateChat(msg)
		}
		return m.updateGame(msg)
	}
	return m, nil
}

// updateGame handles keys while the map has focus.
func (m Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if res, ok := m.dispatch.Handle(msg, false); ok {
		m.show(nil, res)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Chat):
		return m, m.focus("")
	case key.Matches(msg, m.keys.Command):
		return m, m.focus("/")
	case key.Matches(msg, m.keys.Prev):
		m.selectSlot(m.selected - 1)
	case key.Matches(msg, m.keys.Next):
		m.selectSlot(m.selected + 1)
	case key.Matches(msg, m.keys.Use):
		if it, ok := m.selectedItem(); ok {
			m.show(nil, m.engine.UseItem(it.ID))
		}
	case key.Matches(msg, m.keys.Drop):
		if it, ok := m.selectedItem(); ok {
			m.show(nil, m.engine.DropItem(it.ID))
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.refreshChat()
	case msg.String() == "pgup" || msg.String() == "pgdown":
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateChat handles keys while the input line has focus.
func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.send()
	case "esc":
		m.blur()
		return m, nil
	case "up":
		if prev, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil
	case "down":
		if next, ok := m.history.Next(); ok {
			m.input.SetValue(next)
			m.input.CursorEnd()
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send submits the input line as a slash command or a chat message.
func (m Model) send() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if text == "" {
		return m, nil
	}
	m.history.Push(text)

	if meta.IsMeta(text) {
		reply := m.meta.Run(m.ctx, text)
		m.show(reply.Lines, reply.Result)
		if reply.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	res := m.engine.SendMessage(text)
	m.show(nil, res)
	return m, nil
}

func (m *Model) focus(prefill string) tea.Cmd {
	m.chatting = true
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) blur() {
	m.chatting = false
	m.input.Blur()
}

// show replaces the notice block and refreshes the chat.
func (m *Model) show(lines []string, res types.Result) {
	notices := append([]string(nil), lines...)
	if m.meta.Trace {
		notices = append(notices, meta.Trace(res)...)
	}
	if len(notices) > 0 {
		m.notices = notices
	}
	m.selectSlot(m.selected)
	m.refreshChat()
}

// selectSlot moves the inventory cursor, clamped to the current stacks.
func (m *Model) selectSlot(i int) {
	n := len(m.engine.Inventory())
	switch {
	case n == 0:
		i = 0
	case i < 0:
		i = 0
	case i >= n:
		i = n - 1
	}
	m.selected = i
}

func (m Model) selectedItem() (types.InventoryItem, bool) {
	items := m.engine.Inventory()
	if m.selected < 0 || m.selected >= len(items) {
		return types.InventoryItem{}, false
	}
	return items[m.selected], true
}

// refreshChat resizes the chat viewport to the space left under the map
// and re-wraps the log at the current width.
func (m *Model) refreshChat() {
	if !m.ready {
		return
	}
	snap := m.engine.Snapshot()
	height := m.height - lipgloss.Height(m.top(snap)) - 2 - lipgloss.Height(m.help.View(m.keys))
	if height < minChat {
		height = minChat
	}
	width := m.width
	if width < 10 {
		width = 10
	}
	m.chat.Width = width
	m.chat.Height = height
	m.chat.SetContent(chatContent(snap, m.notices, width))
	m.chat.GotoBottom()
}

// chatContent renders the message log followed by the notice block.
func chatContent(snap engine.Snapshot, notices []string, width int) string {
	lines := make([]string, 0, len(snap.Messages)+len(notices))
	for _, msg := range snap.Messages {
		name := nameStyle(msg.PlayerID, snap.Player.ID).Render(msg.PlayerName)
		lines = append(lines, wordwrap.String(name+": "+msg.Message, width))
	}
	for _, n := range notices {
		style := styleNotice
		if strings.HasPrefix(n, "[trace]") {
			style = styleTrace
		}
		lines = append(lines, style.Render(wordwrap.String(n, width)))
	}
	return strings.Join(lines, "\n")
}

// top is the map beside the side panel.
func (m Model) top(snap engine.Snapshot) string {
	mapView := stylePanel.Render(styledMap(render.Project(snap)))
	return lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", renderSidePanel(snap, m.selected))
}

// View renders map, side panel, chat, status bar, input and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	snap := m.engine.Snapshot()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.top(snap),
		m.chat.View(),
		renderStatusBar(snap, m.width),
		m.input.View(),
		m.help.View(m.keys),
	)
}
