package contract

import (
	"okinoko-guess_reveal/sdk"
)

// Event is the JSON record written to the host log for every state change
// and every rejected guess.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

func (c *Contract) emitEvent(eventType string, attributes map[string]string) {
	s, err := ToJSON(Event{Type: eventType, Attributes: attributes}, eventType+" event data")
	if err != nil {
		glog.Error("emitEvent", "type", eventType, "err", err)
		return
	}
	c.host.Log(s)
}

func (c *Contract) emitGameCreated(g *Game) {
	c.emitEvent("gameCreated", map[string]string{
		"id":             UInt64ToString(g.ID),
		"by":             g.Creator.String(),
		"prize":          sdk.FormatAmount(g.TotalPrize),
		"asset":          g.Asset.String(),
		"guessDeadline":  UInt64ToString(g.GuessDeadline),
		"revealDeadline": UInt64ToString(g.RevealDeadline),
	})
}

func (c *Contract) emitCreatorCommitted(gameID uint64) {
	c.emitEvent("creatorCommitted", map[string]string{
		"id": UInt64ToString(gameID),
	})
}

func (c *Contract) emitGuessed(gameID uint64, who sdk.Address) {
	c.emitEvent("guessed", map[string]string{
		"id": UInt64ToString(gameID),
		"by": who.String(),
	})
}

func (c *Contract) emitGuessRejected(gameID uint64, who sdk.Address, reason string) {
	c.emitEvent("guessRejected", map[string]string{
		"id":     UInt64ToString(gameID),
		"by":     who.String(),
		"reason": reason,
	})
}

func (c *Contract) emitWinnerRegistered(gameID uint64, who sdk.Address) {
	c.emitEvent("winnerRegistered", map[string]string{
		"id":     UInt64ToString(gameID),
		"winner": who.String(),
	})
}

func (c *Contract) emitPrizeClaimed(gameID uint64, who sdk.Address, amount uint64) {
	c.emitEvent("prizeClaimed", map[string]string{
		"id":     UInt64ToString(gameID),
		"winner": who.String(),
		"amount": sdk.FormatAmount(amount),
	})
}
