package contract

import (
	"okinoko-guess_reveal/sdk"
)

// IsWinner reports whether identity passed reveal verification.
func (c *Contract) IsWinner(gameID uint64, identity sdk.Address) (bool, error) {
	ws := newWriteSet(c.host)
	g, err := loadGame(ws, gameID)
	if err != nil {
		return false, err
	}
	return winners{ws: ws, game: g}.contains(identity)
}

// Winners lists the winners in the order they revealed.
func (c *Contract) Winners(gameID uint64) ([]sdk.Address, error) {
	ws := newWriteSet(c.host)
	g, err := loadGame(ws, gameID)
	if err != nil {
		return nil, err
	}
	return winners{ws: ws, game: g}.list()
}

// CommitmentOf returns the stored hex digest of identity, if any.
func (c *Contract) CommitmentOf(gameID uint64, identity sdk.Address) (string, bool, error) {
	ws := newWriteSet(c.host)
	if _, err := loadGame(ws, gameID); err != nil {
		return "", false, err
	}
	return commitments{ws: ws, gameID: gameID}.get(identity)
}

// GameInfo is the public snapshot returned by GetGame. Amounts are decimal
// strings.
type GameInfo struct {
	ID               uint64        `json:"id"`
	Creator          sdk.Address   `json:"creator"`
	CreatorCommitted bool          `json:"creatorCommitted"`
	Height           uint64        `json:"height"`
	Phase            string        `json:"phase"`
	CreatedAt        uint64        `json:"createdAt"`
	GuessDeadline    uint64        `json:"guessDeadline"`
	RevealDeadline   uint64        `json:"revealDeadline"`
	Asset            sdk.Asset     `json:"asset"`
	TotalPrize       string        `json:"totalPrize"`
	Share            string        `json:"share"`
	PaidOut          string        `json:"paidOut"`
	Dust             string        `json:"dust"`
	Winners          []sdk.Address `json:"winners"`
	Claimed          uint64        `json:"claimed"`
}

// GetGame returns the game's state as seen at the current height.
func (c *Contract) GetGame(gameID uint64) (*GameInfo, error) {
	ws := newWriteSet(c.host)
	g, err := loadGame(ws, gameID)
	if err != nil {
		return nil, err
	}
	list, err := winners{ws: ws, game: g}.list()
	if err != nil {
		return nil, err
	}
	_, committed, err := commitments{ws: ws, gameID: gameID}.get(g.Creator)
	if err != nil {
		return nil, err
	}
	h := c.host.GetEnv().BlockHeight
	return &GameInfo{
		ID:               g.ID,
		Creator:          g.Creator,
		CreatorCommitted: committed,
		Height:           h,
		Phase:            g.PhaseAt(h).String(),
		CreatedAt:        g.CreatedAt,
		GuessDeadline:    g.GuessDeadline,
		RevealDeadline:   g.RevealDeadline,
		Asset:            g.Asset,
		TotalPrize:       sdk.FormatAmount(g.TotalPrize),
		Share:            sdk.FormatAmount(g.Share()),
		PaidOut:          sdk.FormatAmount(g.PaidOut),
		Dust:             sdk.FormatAmount(g.Dust()),
		Winners:          list,
		Claimed:          g.ClaimedCount,
	}, nil
}
