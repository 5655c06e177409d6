package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marell/teolife/engine/minigame"
	"github.com/marell/teolife/types"
)

// playMinigame runs the minigame an event armed and applies its result.
// The negotiation and the stock market are interactive; the reflex games
// have no text-mode physics, so a simulated attempt is rolled on the
// session RNG.
func (c *CLI) playMinigame(ev *types.EventDef) {
	c.printLine("")
	c.printLine(ev.Title)
	c.printLine(ev.Description)

	var result types.MinigameResult
	switch ev.MinigameRef {
	case "convince_parents":
		result = c.playConvince()
	case "stock_simulator":
		result = c.playStocks()
	default:
		result = c.playReflex(ev.MinigameRef)
	}

	if err := c.Session.ApplyMinigameResult(result); err != nil {
		c.printLine(err.Error())
		return
	}
	if result.Success {
		c.printSystem("Success!")
	} else {
		c.printSystem("That didn't go so well.")
	}
	c.printDeltas()
}

func (c *CLI) playConvince() types.MinigameResult {
	game := minigame.NewConvince()

	for !game.Done() {
		obj := game.Current()
		c.printLine("")
		c.printLine(fmt.Sprintf("%s: %q", obj.Speaker, obj.Text))

		var available []minigame.Reply
		for _, r := range obj.Replies {
			if minigame.ReplyAvailable(c.Session.State.Stats, &r) {
				available = append(available, r)
			}
		}
		for i, r := range available {
			c.printLine(fmt.Sprintf("  %d. %s", i+1, r.Text))
		}

		c.print("reply> ")
		input, ok := c.readLine()
		if !ok {
			break // input exhausted; score whatever rounds were played
		}
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || n < 1 || n > len(available) {
			c.printLine(fmt.Sprintf("Pick a number between 1 and %d.", len(available)))
			continue
		}
		if err := game.Answer(c.Session.State.Stats, available[n-1].ID); err != nil {
			c.printLine(err.Error())
		}
	}

	c.printLine(fmt.Sprintf("Persuasion score: %d", game.Score()))
	return game.Result()
}

func (c *CLI) playStocks() types.MinigameResult {
	market := minigame.NewMarket(c.Session.RNG)
	c.printLine("Commands: buy <asset> <qty>, sell <asset> <qty>, next, quotes, done")

	for !market.Done() {
		c.showQuotes(market)
		c.print(fmt.Sprintf("day %d> ", market.Day()))
		input, ok := c.readLine()
		if !ok {
			break
		}
		fields := strings.Fields(strings.ToLower(input))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "next", "n":
			market.Advance()
		case "quotes", "q":
			// prices reprint at the top of the loop
		case "done":
			for !market.Done() {
				market.Advance()
			}
		case "buy", "sell":
			if len(fields) != 3 {
				c.printLine(fmt.Sprintf("Usage: %s <asset> <qty>", fields[0]))
				continue
			}
			qty, err := strconv.Atoi(fields[2])
			if err != nil {
				c.printLine("Quantity must be a number.")
				continue
			}
			if fields[0] == "buy" {
				err = market.Buy(fields[1], qty)
			} else {
				err = market.Sell(fields[1], qty)
			}
			if err != nil {
				c.printLine(err.Error())
			}
		default:
			c.printLine("Commands: buy <asset> <qty>, sell <asset> <qty>, next, quotes, done")
		}
	}

	c.printLine(fmt.Sprintf("Market closed. Portfolio $%.2f, profit $%+.2f.", market.PortfolioValue(), market.Profit()))
	return market.Finish()
}

func (c *CLI) showQuotes(market *minigame.Market) {
	c.printLine(fmt.Sprintf("Cash $%.2f", market.Cash()))
	for _, a := range market.Assets() {
		c.printLine(fmt.Sprintf("  %-10s $%8.2f  held: %d", a.ID, a.Price, market.Holding(a.ID)))
	}
}

// playReflex simulates one attempt at a reflex minigame. The roll is
// deterministic for a given seed and draw position.
func (c *CLI) playReflex(ref string) types.MinigameResult {
	c.print("(press Enter to play) ")
	c.readLine()

	rng := c.Session.RNG
	switch ref {
	case "flappy_teo":
		score := rng.Intn(minigame.FlappyGoal * 2)
		c.printLine(fmt.Sprintf("You dodged %d obstacles.", score))
		return minigame.FlappyResult(score)
	case "cleanup_party":
		items := rng.Intn(minigame.CleanupGoal * 2)
		c.printLine(fmt.Sprintf("You cleaned up %d messes before the door opened.", items))
		return minigame.CleanupResult(items)
	case "rhythm_speak":
		hits := rng.Intn(minigame.RhythmGoal * 2)
		c.printLine(fmt.Sprintf("You matched %d syllables.", hits))
		return minigame.RhythmResult(hits)
	case "balance_walk":
		survived := rng.Float64() < 0.7
		if survived {
			c.printLine("Wobble... wobble... step!")
		} else {
			c.printLine("Down you go. Onto the soft carpet, thankfully.")
		}
		return minigame.BalanceResult(survived)
	}
	return types.MinigameResult{}
}
