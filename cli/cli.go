// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Teo life-sim engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/marell/teolife/engine"
	"github.com/marell/teolife/engine/resolve"
	"github.com/marell/teolife/engine/snapshot"
	"github.com/marell/teolife/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *engine.Session
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)

	scanner *bufio.Scanner

	// Dialogue in progress: the event whose choices are on screen, and the
	// special node it came from (empty for regular map events).
	pendingEvent *types.EventDef
	pendingNode  string
}

// New creates a CLI wired to the given session.
func New(sess *engine.Session) *CLI {
	return &CLI{
		Session: sess,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run starts the game loop. It shows the intro and the city map, then
// loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Session.Defs.Game.Intro != "" {
		c.printLine(c.Session.Defs.Game.Intro)
		c.printLine("")
	}

	c.Session.StartGame()
	c.showMap()

	c.scanner = bufio.NewScanner(c.In)
	for {
		c.print("> ")
		input, ok := c.readLine()
		if !ok {
			break
		}
		if input == "" {
			continue
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		c.dispatch(ParseCommand(input))
	}
}

// readLine returns the next non-comment input line, echoing it when script
// playback is on.
func (c *CLI) readLine() (string, bool) {
	for c.scanner.Scan() {
		input := strings.TrimSpace(c.scanner.Text())
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput && input != "" {
			c.printLine(input)
		}
		return input, true
	}
	return "", false
}

func (c *CLI) dispatch(in Intent) {
	switch in.Verb {
	case "map":
		c.showMap()
	case "visit":
		c.cmdVisit(in.Arg)
	case "choose":
		c.cmdChoose(in.N)
	case "age":
		c.cmdAge()
	case "wait":
		n := in.N
		if n <= 0 {
			n = 1
		}
		c.Session.AdvanceDays(n)
		c.printLine(fmt.Sprintf("%d day(s) pass. Age %d, day %d.", n, c.Session.State.Age, c.Session.State.Day))
		c.maybeEnding()
	case "stats":
		c.showStats()
	case "photos":
		c.showPhotos()
	case "endings":
		c.showEndings()
	case "score":
		c.printLine(fmt.Sprintf("Life score: %d / 18", c.Session.LifeScore()))
	default:
		c.printLine("I don't know how to do that. Type /help for commands.")
	}
}

// cmdVisit enters a map location or, during a special sequence, one of its
// nodes.
func (c *CLI) cmdVisit(arg string) {
	if arg == "" {
		c.printLine("Visit where?")
		return
	}

	if c.Session.State.Phase == types.PhaseSpecial {
		c.visitSpecialNode(arg)
		return
	}

	ev, err := c.Session.EnterLocation(arg)
	if err != nil {
		c.printLine(err.Error())
		return
	}
	if ev == nil {
		c.printLine("Nothing is happening here right now.")
		return
	}

	if ev.MinigameRef != "" {
		c.playMinigame(ev)
		return
	}

	c.pendingEvent = ev
	c.pendingNode = ""
	c.showEvent(ev)
}

func (c *CLI) visitSpecialNode(arg string) {
	def := c.Session.ActiveSpecial()
	if def == nil {
		c.printLine("No sequence is in progress.")
		return
	}
	for _, node := range def.Nodes {
		if node.ID != arg && !strings.EqualFold(node.Label, arg) {
			continue
		}
		ev := c.Session.Defs.EventByID(node.EventID)
		if ev == nil {
			c.printLine(fmt.Sprintf("Nothing happens at %s.", node.Label))
			return
		}
		c.pendingEvent = ev
		c.pendingNode = node.ID
		c.showEvent(ev)
		return
	}
	c.printLine(fmt.Sprintf("There is no %q here. Type map to see where you can go.", arg))
}

// cmdChoose resolves the nth visible choice of the pending event.
func (c *CLI) cmdChoose(n int) {
	if c.pendingEvent == nil {
		c.printLine("There is nothing to choose right now.")
		return
	}
	visible := c.visibleChoices(c.pendingEvent)
	if n < 1 || n > len(visible) {
		c.printLine(fmt.Sprintf("Pick a number between 1 and %d.", len(visible)))
		return
	}
	choice := visible[n-1]

	var err error
	if c.pendingNode != "" {
		err = c.Session.VisitSpecialNode(c.pendingNode, choice.ID)
	} else {
		err = c.Session.ResolveChoice(c.pendingEvent.ID, choice.ID)
	}
	if err != nil {
		c.printLine(err.Error())
		return
	}

	c.pendingEvent = nil
	c.pendingNode = ""
	c.printDeltas()

	if c.Session.State.Phase == types.PhaseSpecial {
		c.showMap()
		return
	}
	if c.Session.State.ActiveSpecial == nil && c.Session.State.Phase == types.PhaseMap {
		c.printLine("")
	}
}

func (c *CLI) cmdAge() {
	c.Session.AdvanceAge()
	s := c.Session.State
	c.printLine(fmt.Sprintf("Another year. Teo is now %d (%s).", s.Age, s.Act))

	if s.Phase == types.PhaseSpecial {
		if def := c.Session.ActiveSpecial(); def != nil {
			c.printLine("")
			c.printLine(fmt.Sprintf("*** %s ***", def.Name))
			c.showMap()
		}
		return
	}
	c.maybeEnding()
}

// maybeEnding resolves and prints the ending once the story is over.
func (c *CLI) maybeEnding() {
	if c.Session.State.Phase != types.PhaseEnding {
		return
	}
	if len(c.Session.State.EndingsSeen) > 0 {
		return // already resolved this life
	}
	e, err := c.Session.ResolveEnding()
	if err != nil {
		c.printLine(err.Error())
		return
	}
	c.printLine("")
	c.printLine(fmt.Sprintf("=== %s ===", e.Title))
	c.printLine(e.Summary)
	c.printLine(fmt.Sprintf("Life score: %d / 18", c.Session.LifeScore()))
	c.showPhotos()
	c.printLine("Type /reset to live another life, or /quit.")
}

// showEvent prints an event with its numbered, stat-gated choices. Choices
// whose gate is unmet are hidden, the way the original game greys them out.
func (c *CLI) showEvent(ev *types.EventDef) {
	c.printLine("")
	c.printLine(ev.Title)
	c.printLine(ev.Description)
	for i, choice := range c.visibleChoices(ev) {
		c.printLine(fmt.Sprintf("  %d. %s", i+1, choice.Text))
	}
}

func (c *CLI) visibleChoices(ev *types.EventDef) []types.Choice {
	var out []types.Choice
	for _, choice := range ev.Choices {
		if resolve.ChoiceAvailable(c.Session.State, &choice) {
			out = append(out, choice)
		}
	}
	return out
}

func (c *CLI) showMap() {
	s := c.Session.State

	if s.Phase == types.PhaseSpecial {
		def := c.Session.ActiveSpecial()
		if def == nil {
			return
		}
		c.printLine(fmt.Sprintf("%s — visit every spot to move on:", def.Name))
		for _, node := range def.Nodes {
			mark := " "
			if s.ActiveSpecial != nil && s.ActiveSpecial.Visited[node.ID] {
				mark = "x"
			}
			c.printLine(fmt.Sprintf("  [%s] %s %s (%s)", mark, node.Icon, node.Label, node.ID))
		}
		return
	}

	c.printLine(fmt.Sprintf("Age %d (%s), day %d. The city map:", s.Age, s.Act, s.Day))
	for _, loc := range c.Session.UnlockedLocations() {
		c.printLine(fmt.Sprintf("  %s %s (%s)", loc.Icon, loc.Name, loc.ID))
	}
}

func (c *CLI) showStats() {
	st := c.Session.State.Stats
	c.printLine(fmt.Sprintf("Ambition  %s %d", statBar(st.Ambition), st.Ambition))
	c.printLine(fmt.Sprintf("Chaos     %s %d", statBar(st.Chaos), st.Chaos))
	c.printLine(fmt.Sprintf("Relations %s %d", statBar(st.Relations), st.Relations))
}

// statBar renders a 20-cell text gauge for a 0..100 stat.
func statBar(v int) string {
	filled := v / 5
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 20-filled) + "]"
}

func (c *CLI) showPhotos() {
	s := c.Session.State
	if len(s.UnlockedPhotos) == 0 {
		c.printLine("The scrapbook is empty.")
		return
	}
	c.printLine("Scrapbook:")
	for _, id := range s.UnlockedPhotos {
		if p := c.Session.Defs.PhotoByID(id); p != nil {
			c.printLine(fmt.Sprintf("  [age %d] %s", p.AgeTag, p.Caption))
		} else {
			c.printLine(fmt.Sprintf("  %s", id))
		}
	}
}

func (c *CLI) showEndings() {
	s := c.Session.State
	if len(s.EndingsSeen) == 0 {
		c.printLine("No endings seen yet.")
		return
	}
	c.printLine("Endings seen:")
	for _, id := range s.EndingsSeen {
		for _, e := range c.Session.Defs.Endings {
			if e.ID == id {
				c.printLine(fmt.Sprintf("  %s", e.Title))
			}
		}
	}
}

// printDeltas reports the stat movement of the last applied effect.
func (c *CLI) printDeltas() {
	d := c.Session.State.LastDeltas
	if d == nil {
		return
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
	if len(parts) > 0 {
		c.printSystem(strings.Join(parts, ", "))
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/age":
		if len(parts) < 2 {
			c.printSystem("Usage: /age <years>")
			return false
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			c.printSystem("Usage: /age <years>")
			return false
		}
		if err := c.Session.SetAge(n); err != nil {
			c.printSystem(err.Error())
			return false
		}
		c.printSystem(fmt.Sprintf("Jumped to age %d.", n))
		c.maybeEnding()

	case "/reset":
		c.Session.ResetGame()
		c.Session.StartGame()
		c.pendingEvent = nil
		c.pendingNode = ""
		c.printSystem("A new life begins.")
		c.showMap()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
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
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	dump, err := snapshot.Dump(c.Session.State, c.Session.RNG.Position())
	if err != nil {
		c.printSystem(fmt.Sprintf("Dump failed: %v", err))
		return
	}
	c.printLine(dump)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
