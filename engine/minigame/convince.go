package minigame

import (
	"fmt"

	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
)

// The convince-parents negotiation: three parental objections, one reply
// each. Replies carry an effectiveness score and may be gated on stats;
// accumulating enough effectiveness wins the account.

const convinceThreshold = 3

// Reply is one way to answer the current objection.
type Reply struct {
	ID            string
	Text          string
	Effectiveness int
	Gate          *types.StatGate
}

// Objection is one round of parental pushback.
type Objection struct {
	ID      string
	Speaker string
	Text    string
	Replies []Reply
}

var objections = []Objection{
	{
		ID:      "too_young",
		Speaker: "Mom",
		Text:    "An investment account? You're fourteen. You don't even make your bed.",
		Replies: []Reply{
			{
				ID: "compound", Text: "Starting early is the whole point. Compound interest needs decades.",
				Effectiveness: 2, Gate: &types.StatGate{Stat: "ambition", Min: 15},
			},
			{
				ID: "trust_me", Text: "You always say you trust me. This is what trusting me looks like.",
				Effectiveness: 1, Gate: &types.StatGate{Stat: "relations", Min: 12},
			},
			{ID: "whatever", Text: "Fine, forget it. You never listen anyway.", Effectiveness: 0},
		},
	},
	{
		ID:      "too_risky",
		Speaker: "Dad",
		Text:    "The market eats kids like you for breakfast. You'll lose it all.",
		Replies: []Reply{
			{
				ID: "index_funds", Text: "Not if I stick to index funds. I've read about diversification.",
				Effectiveness: 2, Gate: &types.StatGate{Stat: "ambition", Min: 20},
			},
			{
				ID: "together", Text: "Then help me. We could pick the first stocks together.",
				Effectiveness: 1, Gate: &types.StatGate{Stat: "relations", Min: 18},
			},
			{ID: "yolo", Text: "So what? It's my money to lose.", Effectiveness: 0},
		},
	},
	{
		ID:      "whose_money",
		Speaker: "Mom",
		Text:    "And whose money exactly would you be investing?",
		Replies: []Reply{
			{
				ID: "savings", Text: "Mine. Two summers of lawn mowing, every birthday since I was nine.",
				Effectiveness: 2, Gate: &types.StatGate{Stat: "ambition", Min: 25},
			},
			{ID: "allowance", Text: "My allowance. I'll skip the snacks.", Effectiveness: 1},
			{ID: "loan", Text: "I was hoping... yours?", Effectiveness: 0},
		},
	},
}

// Convince is one negotiation session. Zero value is not usable; call
// NewConvince.
type Convince struct {
	round int
	score int
}

// NewConvince starts a fresh negotiation.
func NewConvince() *Convince {
	return &Convince{}
}

// Current returns the objection awaiting an answer, or nil when the
// negotiation is over.
func (c *Convince) Current() *Objection {
	if c.Done() {
		return nil
	}
	return &objections[c.round]
}

// ReplyAvailable reports whether the player's stats unlock a reply.
func ReplyAvailable(st types.Stats, r *Reply) bool {
	if r.Gate == nil {
		return true
	}
	return state.StatValue(st, r.Gate.Stat) >= r.Gate.Min
}

// Answer plays a reply to the current objection and advances the round.
// Gated replies the player does not qualify for are rejected.
func (c *Convince) Answer(st types.Stats, replyID string) error {
	obj := c.Current()
	if obj == nil {
		return fmt.Errorf("convince: negotiation already over")
	}
	var reply *Reply
	for i := range obj.Replies {
		if obj.Replies[i].ID == replyID {
			reply = &obj.Replies[i]
			break
		}
	}
	if reply == nil {
		return fmt.Errorf("convince: objection %q has no reply %q", obj.ID, replyID)
	}
	if !ReplyAvailable(st, reply) {
		return fmt.Errorf("convince: reply %q requires %s >= %d", reply.ID, reply.Gate.Stat, reply.Gate.Min)
	}
	c.score += reply.Effectiveness
	c.round++
	return nil
}

// Done reports whether all objections have been answered.
func (c *Convince) Done() bool {
	return c.round >= len(objections)
}

// Score returns the accumulated effectiveness so far.
func (c *Convince) Score() int {
	return c.score
}

// Result terminates the negotiation. Winning earns a little ambition;
// losing the argument costs a little goodwill.
func (c *Convince) Result() types.MinigameResult {
	success := c.score >= convinceThreshold
	r := types.MinigameResult{
		Success:  success,
		Metadata: map[string]any{"score": c.score, "rounds": c.round},
	}
	if success {
		r.Deltas.Ambition = 1
	} else {
		r.Deltas.Relations = -1
	}
	return r
}
