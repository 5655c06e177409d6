package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marell/teolife/cli"
	"github.com/marell/teolife/engine"
	"github.com/marell/teolife/engine/minigame"
	"github.com/marell/teolife/engine/resolve"
	"github.com/marell/teolife/engine/snapshot"
	"github.com/marell/teolife/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the teolife TUI.
type Model struct {
	session *engine.Session

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	// Modal interaction state. At most one of these is live at a time.
	pendingEvent *types.EventDef
	pendingNode  string
	convince     *minigame.Convince
	market       *minigame.Market

	width    int
	height   int
	ready    bool
	quitting bool
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given session.
func New(sess *engine.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		session: sess,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(sess *engine.Session) error {
	m := New(sess)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro and the map.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		game := m.session.Defs.Game
		var lines []string

		lines = append(lines, game.Title+" v"+game.Version+" by "+game.Author)
		lines = append(lines, "")

		if game.Intro != "" {
			lines = append(lines, game.Intro)
			lines = append(lines, "")
		}

		m.session.StartGame()
		lines = append(lines, m.mapLines()...)

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	output := m.submit(input)
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// submit dispatches one game input line, honoring whatever modal
// interaction is live.
func (m *Model) submit(input string) []string {
	if m.convince != nil {
		return m.submitConvince(input)
	}
	if m.market != nil {
		return m.submitMarket(input)
	}

	in := cli.ParseCommand(input)
	switch in.Verb {
	case "map":
		return m.mapLines()
	case "visit":
		return m.cmdVisit(in.Arg)
	case "choose":
		return m.cmdChoose(in.N)
	case "age":
		return m.cmdAge()
	case "wait":
		n := in.N
		if n <= 0 {
			n = 1
		}
		m.session.AdvanceDays(n)
		lines := []string{fmt.Sprintf("%d day(s) pass.", n)}
		return append(lines, m.endingLines()...)
	case "stats":
		return m.statLines()
	case "photos":
		return m.photoLines()
	case "endings":
		return m.endingGalleryLines()
	case "score":
		return []string{fmt.Sprintf("Life score: %d / 18", m.session.LifeScore())}
	default:
		return []string{"I don't know how to do that. Type /help for commands."}
	}
}

func (m *Model) cmdVisit(arg string) []string {
	if arg == "" {
		return []string{"Visit where?"}
	}

	if m.session.State.Phase == types.PhaseSpecial {
		return m.visitSpecialNode(arg)
	}

	ev, err := m.session.EnterLocation(arg)
	if err != nil {
		return []string{err.Error()}
	}
	if ev == nil {
		return []string{"Nothing is happening here right now."}
	}

	if ev.MinigameRef != "" {
		return m.startMinigame(ev)
	}

	m.pendingEvent = ev
	m.pendingNode = ""
	return m.eventLines(ev)
}

func (m *Model) visitSpecialNode(arg string) []string {
	def := m.session.ActiveSpecial()
	if def == nil {
		return []string{"No sequence is in progress."}
	}
	for _, node := range def.Nodes {
		if node.ID != arg && !strings.EqualFold(node.Label, arg) {
			continue
		}
		ev := m.session.Defs.EventByID(node.EventID)
		if ev == nil {
			return []string{fmt.Sprintf("Nothing happens at %s.", node.Label)}
		}
		m.pendingEvent = ev
		m.pendingNode = node.ID
		return m.eventLines(ev)
	}
	return []string{fmt.Sprintf("There is no %q here. Type map to see where you can go.", arg)}
}

func (m *Model) cmdChoose(n int) []string {
	if m.pendingEvent == nil {
		return []string{"There is nothing to choose right now."}
	}
	visible := m.visibleChoices(m.pendingEvent)
	if n < 1 || n > len(visible) {
		return []string{fmt.Sprintf("Pick a number between 1 and %d.", len(visible))}
	}
	choice := visible[n-1]

	var err error
	if m.pendingNode != "" {
		err = m.session.VisitSpecialNode(m.pendingNode, choice.ID)
	} else {
		err = m.session.ResolveChoice(m.pendingEvent.ID, choice.ID)
	}
	if err != nil {
		return []string{err.Error()}
	}

	m.pendingEvent = nil
	m.pendingNode = ""

	lines := m.deltaLines()
	if m.session.State.Phase == types.PhaseSpecial {
		lines = append(lines, "")
		lines = append(lines, m.mapLines()...)
	}
	return lines
}

func (m *Model) cmdAge() []string {
	m.session.AdvanceAge()
	s := m.session.State
	lines := []string{fmt.Sprintf("Another year. Teo is now %d (%s).", s.Age, s.Act)}

	if s.Phase == types.PhaseSpecial {
		if def := m.session.ActiveSpecial(); def != nil {
			lines = append(lines, "", fmt.Sprintf("*** %s ***", def.Name))
			lines = append(lines, m.mapLines()...)
		}
		return lines
	}
	return append(lines, m.endingLines()...)
}

// startMinigame arms the modal state for an interactive minigame or plays
// a reflex game in one roll.
func (m *Model) startMinigame(ev *types.EventDef) []string {
	lines := []string{"", ev.Title, ev.Description}

	switch ev.MinigameRef {
	case "convince_parents":
		m.convince = minigame.NewConvince()
		return append(lines, m.convinceRoundLines()...)

	case "stock_simulator":
		m.market = minigame.NewMarket(m.session.RNG)
		lines = append(lines, "Commands: buy <asset> <qty>, sell <asset> <qty>, next, done")
		return append(lines, m.marketLines()...)

	default:
		return append(lines, m.playReflex(ev.MinigameRef)...)
	}
}

func (m *Model) convinceRoundLines() []string {
	obj := m.convince.Current()
	if obj == nil {
		return nil
	}
	lines := []string{"", fmt.Sprintf("%s: %q", obj.Speaker, obj.Text)}
	i := 0
	for _, r := range obj.Replies {
		if minigame.ReplyAvailable(m.session.State.Stats, &r) {
			i++
			lines = append(lines, fmt.Sprintf("  %d. %s", i, r.Text))
		}
	}
	return lines
}

func (m *Model) submitConvince(input string) []string {
	obj := m.convince.Current()
	if obj == nil {
		return m.finishConvince()
	}

	var available []minigame.Reply
	for _, r := range obj.Replies {
		if minigame.ReplyAvailable(m.session.State.Stats, &r) {
			available = append(available, r)
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(available) {
		return []string{fmt.Sprintf("Pick a number between 1 and %d.", len(available))}
	}
	if err := m.convince.Answer(m.session.State.Stats, available[n-1].ID); err != nil {
		return []string{err.Error()}
	}

	if m.convince.Done() {
		return m.finishConvince()
	}
	return m.convinceRoundLines()
}

func (m *Model) finishConvince() []string {
	result := m.convince.Result()
	score := m.convince.Score()
	m.convince = nil

	lines := []string{fmt.Sprintf("Persuasion score: %d", score)}
	return append(lines, m.applyMinigame(result)...)
}

func (m *Model) marketLines() []string {
	lines := []string{fmt.Sprintf("Day %d of %d. Cash $%.2f", m.market.Day(), minigame.MarketDays, m.market.Cash())}
	for _, a := range m.market.Assets() {
		lines = append(lines, fmt.Sprintf("  %-10s $%8.2f  held: %d", a.ID, a.Price, m.market.Holding(a.ID)))
	}
	return lines
}

func (m *Model) submitMarket(input string) []string {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "next", "n":
		m.market.Advance()
	case "done":
		for !m.market.Done() {
			m.market.Advance()
		}
	case "quotes", "q":
		return m.marketLines()
	case "buy", "sell":
		if len(fields) != 3 {
			return []string{fmt.Sprintf("Usage: %s <asset> <qty>", fields[0])}
		}
		qty, err := strconv.Atoi(fields[2])
		if err != nil {
			return []string{"Quantity must be a number."}
		}
		if fields[0] == "buy" {
			err = m.market.Buy(fields[1], qty)
		} else {
			err = m.market.Sell(fields[1], qty)
		}
		if err != nil {
			return []string{err.Error()}
		}
		return m.marketLines()
	default:
		return []string{"Commands: buy <asset> <qty>, sell <asset> <qty>, next, done"}
	}

	if m.market.Done() {
		return m.finishMarket()
	}
	return m.marketLines()
}

func (m *Model) finishMarket() []string {
	lines := []string{fmt.Sprintf("Market closed. Portfolio $%.2f, profit $%+.2f.",
		m.market.PortfolioValue(), m.market.Profit())}
	result := m.market.Finish()
	m.market = nil
	return append(lines, m.applyMinigame(result)...)
}

// playReflex rolls one attempt at a reflex minigame on the session RNG.
func (m *Model) playReflex(ref string) []string {
	rng := m.session.RNG
	var (
		result types.MinigameResult
		lines  []string
	)
	switch ref {
	case "flappy_teo":
		score := rng.Intn(minigame.FlappyGoal * 2)
		lines = []string{fmt.Sprintf("You dodged %d obstacles.", score)}
		result = minigame.FlappyResult(score)
	case "cleanup_party":
		items := rng.Intn(minigame.CleanupGoal * 2)
		lines = []string{fmt.Sprintf("You cleaned up %d messes before the door opened.", items)}
		result = minigame.CleanupResult(items)
	case "rhythm_speak":
		hits := rng.Intn(minigame.RhythmGoal * 2)
		lines = []string{fmt.Sprintf("You matched %d syllables.", hits)}
		result = minigame.RhythmResult(hits)
	case "balance_walk":
		survived := rng.Float64() < 0.7
		if survived {
			lines = []string{"Wobble... wobble... step!"}
		} else {
			lines = []string{"Down you go. Onto the soft carpet, thankfully."}
		}
		result = minigame.BalanceResult(survived)
	}
	return append(lines, m.applyMinigame(result)...)
}

func (m *Model) applyMinigame(result types.MinigameResult) []string {
	if err := m.session.ApplyMinigameResult(result); err != nil {
		return []string{err.Error()}
	}
	var lines []string
	if result.Success {
		lines = append(lines, "[Success!]")
	} else {
		lines = append(lines, "[That didn't go so well.]")
	}
	return append(lines, m.deltaLines()...)
}

// endingLines resolves and formats the ending once the story is over.
func (m *Model) endingLines() []string {
	if m.session.State.Phase != types.PhaseEnding {
		return nil
	}
	if len(m.session.State.EndingsSeen) > 0 {
		return nil
	}
	e, err := m.session.ResolveEnding()
	if err != nil {
		return []string{err.Error()}
	}
	lines := []string{
		"",
		fmt.Sprintf("=== %s ===", e.Title),
		e.Summary,
		fmt.Sprintf("Life score: %d / 18", m.session.LifeScore()),
	}
	lines = append(lines, m.photoLines()...)
	return append(lines, "Type /reset to live another life, or /quit.")
}

func (m *Model) eventLines(ev *types.EventDef) []string {
	lines := []string{"", ev.Title, ev.Description}
	for i, choice := range m.visibleChoices(ev) {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, choice.Text))
	}
	return lines
}

func (m *Model) visibleChoices(ev *types.EventDef) []types.Choice {
	var out []types.Choice
	for _, choice := range ev.Choices {
		if resolve.ChoiceAvailable(m.session.State, &choice) {
			out = append(out, choice)
		}
	}
	return out
}

func (m *Model) mapLines() []string {
	s := m.session.State

	if s.Phase == types.PhaseSpecial {
		def := m.session.ActiveSpecial()
		if def == nil {
			return nil
		}
		lines := []string{fmt.Sprintf("%s — visit every spot to move on:", def.Name)}
		for _, node := range def.Nodes {
			mark := " "
			if s.ActiveSpecial != nil && s.ActiveSpecial.Visited[node.ID] {
				mark = "x"
			}
			lines = append(lines, fmt.Sprintf("  [%s] %s %s (%s)", mark, node.Icon, node.Label, node.ID))
		}
		return lines
	}

	lines := []string{fmt.Sprintf("Age %d (%s), day %d. The city map:", s.Age, s.Act, s.Day)}
	for _, loc := range m.session.UnlockedLocations() {
		lines = append(lines, fmt.Sprintf("  %s %s (%s)", loc.Icon, loc.Name, loc.ID))
	}
	return lines
}

func (m *Model) statLines() []string {
	st := m.session.State.Stats
	return []string{
		fmt.Sprintf("Ambition  %s %d", statGauge(st.Ambition), st.Ambition),
		fmt.Sprintf("Chaos     %s %d", statGauge(st.Chaos), st.Chaos),
		fmt.Sprintf("Relations %s %d", statGauge(st.Relations), st.Relations),
	}
}

func (m *Model) photoLines() []string {
	s := m.session.State
	if len(s.UnlockedPhotos) == 0 {
		return []string{"The scrapbook is empty."}
	}
	lines := []string{"Scrapbook:"}
	for _, id := range s.UnlockedPhotos {
		if p := m.session.Defs.PhotoByID(id); p != nil {
			lines = append(lines, fmt.Sprintf("  [age %d] %s", p.AgeTag, p.Caption))
		} else {
			lines = append(lines, "  "+id)
		}
	}
	return lines
}

func (m *Model) endingGalleryLines() []string {
	s := m.session.State
	if len(s.EndingsSeen) == 0 {
		return []string{"No endings seen yet."}
	}
	lines := []string{"Endings seen:"}
	for _, id := range s.EndingsSeen {
		for _, e := range m.session.Defs.Endings {
			if e.ID == id {
				lines = append(lines, "  "+e.Title)
			}
		}
	}
	return lines
}

func (m *Model) deltaLines() []string {
	d := m.session.State.LastDeltas
	if d == nil {
		return nil
	}
	var parts []string
	if d.Ambition != 0 {
		parts = append(parts, fmt.Sprintf("ambition %+d", d.Ambition))
	}
	if d.Chaos != 0 {
		parts = append(parts, fmt.Sprintf("chaos %+d", d.Chaos))
	}
	if d.Relations != 0 {
		parts = append(parts, fmt.Sprintf("relations %+d", d.Relations))
	}
	if len(parts) == 0 {
		return nil
	}
	return []string{strings.Join(parts, ", ")}
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/age":
		if len(parts) < 2 {
			return []string{"Usage: /age <years>"}, false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return []string{"Usage: /age <years>"}, false
		}
		if err := m.session.SetAge(n); err != nil {
			return []string{err.Error()}, false
		}
		lines := []string{fmt.Sprintf("Jumped to age %d.", n)}
		return append(lines, m.endingLines()...), false

	case "/reset":
		m.session.ResetGame()
		m.session.StartGame()
		m.pendingEvent = nil
		m.pendingNode = ""
		m.convince = nil
		m.market = nil
		lines := []string{"A new life begins."}
		return append(lines, m.mapLines()...), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /reset        — Start a new life",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state as JSON",
		"  /age <years>  — Debug: jump straight to an age",
		"",
		"Game commands:",
		"  map (m)           — Show the city map (or a sequence's spots)",
		"  visit <place>     — Go somewhere (go/enter/travel also work)",
		"  1, 2, 3...        — Pick a dialogue choice by number",
		"  age (a)           — Grow a year older",
		"  wait [n] (w)      — Let days pass",
		"  stats             — Show ambition / chaos / relations",
		"  photos (p)        — Browse the scrapbook",
		"  endings           — Endings seen across lives",
		"  score             — Current life score",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	dump, err := snapshot.Dump(m.session.State, m.session.RNG.Position())
	if err != nil {
		return []string{fmt.Sprintf("Dump failed: %v", err)}
	}
	return strings.Split(dump, "\n")
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Preserves existing newlines within the text.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
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
