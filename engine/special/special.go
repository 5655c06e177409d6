// Package special runs the self-contained story sequences that interrupt
// normal life at fixed ages (the quarantine year, the Australia trip). A
// sequence is a small map of nodes the player visits in any order; when
// every node has been seen the sequence completes and sets its done flag.
package special

import (
	"fmt"

	"github.com/marell/teolife/engine/effects"
	"github.com/marell/teolife/engine/resolve"
	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// ShouldTrigger returns the special sequence that opens at the current age,
// or nil. Sequences whose done flag is already set never re-trigger.
func ShouldTrigger(defs *state.Defs, s *types.State) *types.SpecialMapDef {
	if s.ActiveSpecial != nil {
		return nil
	}
	def := defs.SpecialForAge(s.Age)
	if def == nil || state.GetFlag(s, def.DoneFlag) {
		return nil
	}
	return def
}

// Begin opens a sequence: the session leaves the normal map until it
// completes.
func Begin(s *types.State, def *types.SpecialMapDef) {
	s.ActiveSpecial = &types.SpecialProgress{
		MapID:   def.ID,
		Visited: make(map[string]bool),
	}
	s.Phase = types.PhaseSpecial
}

// NodeVisited reports whether a node has already been seen in the active
// sequence.
func NodeVisited(s *types.State, nodeID string) bool {
	return s.ActiveSpecial != nil && s.ActiveSpecial.Visited[nodeID]
}

// AllVisited reports whether every node of the sequence has been seen.
func AllVisited(s *types.State, def *types.SpecialMapDef) bool {
	if s.ActiveSpecial == nil {
		return false
	}
	for _, n := range def.Nodes {
		if !s.ActiveSpecial.Visited[n.ID] {
			return false
		}
	}
	return true
}

// VisitNode plays one node of the active sequence: the node's event choice
// goes through the normal effects path, then the node is marked visited.
// Visiting the last unseen node completes the sequence.
func VisitNode(defs *state.Defs, s *types.State, nodeID, choiceID string) error {
	if s.ActiveSpecial == nil {
		return fmt.Errorf("special: no sequence active")
	}
	def := defs.SpecialByID(s.ActiveSpecial.MapID)
	if def == nil {
		return fmt.Errorf("special: unknown sequence %q", s.ActiveSpecial.MapID)
	}
	var node *types.MapNode
	for i := range def.Nodes {
		if def.Nodes[i].ID == nodeID {
			node = &def.Nodes[i]
			break
		}
	}
	if node == nil {
		return fmt.Errorf("special: sequence %q has no node %q", def.ID, nodeID)
	}
	ev := defs.EventByID(node.EventID)
	if ev == nil {
		return fmt.Errorf("special: node %q references unknown event %q", nodeID, node.EventID)
	}
	choice := resolve.FindChoice(ev, choiceID)
	if choice == nil {
		return fmt.Errorf("special: event %q has no choice %q", ev.ID, choiceID)
	}
	if err := effects.ApplyChoice(s, ev, choice); err != nil {
		return err
	}
	s.ActiveSpecial.Visited[nodeID] = true
	if AllVisited(s, def) {
		complete(s, def)
	}
	return nil
}

// complete closes the sequence: done flag, completion photos, back to the
// map. Setting the done flag twice is harmless.
func complete(s *types.State, def *types.SpecialMapDef) {
	state.SetFlag(s, def.DoneFlag)
	for _, p := range def.Photos {
		state.UnlockPhoto(s, p.ID)
	}
	s.ActiveSpecial = nil
	s.Phase = types.PhaseMap
}
