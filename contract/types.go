package contract

import "okinoko-guess_reveal/sdk"

// Windows are the lengths, in blocks, of the commit and reveal phases.
type Windows struct {
	Commit uint64 `toml:"commitWindow"`
	Reveal uint64 `toml:"revealWindow"`
}

// DefaultWindows gives participants five blocks to guess and one to reveal.
var DefaultWindows = Windows{Commit: 5, Reveal: 1}

// DefaultPrize is the prize, in asset units, used when none is configured.
const DefaultPrize uint64 = 100

// Game is the runtime view of one contract instance.
//
// The immutable part (creator, deadlines, prize) is stored under the meta
// key; counters that change after creation are stored under the state key.
// Commitments, winners and claims live under their own per-identity keys.
type Game struct {
	ID             uint64
	Creator        sdk.Address
	GuessDeadline  uint64
	RevealDeadline uint64
	TotalPrize     uint64
	Asset          sdk.Asset
	CreatedAt      uint64

	WinnerCount  uint64
	ClaimedCount uint64
	PaidOut      uint64
}

// Share is the equal payout of a single winner; zero while nobody won.
func (g *Game) Share() uint64 {
	if g.WinnerCount == 0 {
		return 0
	}
	return g.TotalPrize / g.WinnerCount
}

// Dust is the part of the prize no claim will ever pay out: the remainder of
// the integer division, or the whole prize when nobody won. It stays in the
// contract account.
func (g *Game) Dust() uint64 {
	return g.TotalPrize - g.Share()*g.WinnerCount
}
