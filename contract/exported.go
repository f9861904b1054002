package contract

import (
	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// Action names accepted by Call.
const (
	ActionCreate        = "g_create"
	ActionCommitCreator = "g_commit_creator"
	ActionGuess         = "g_guess"
	ActionReveal        = "g_reveal"
	ActionClaim         = "g_claim"
	ActionIsWinner      = "g_is_winner"
	ActionGet           = "g_get"
	ActionWinners       = "g_winners"
)

// Call dispatches one named action with a '|' separated payload, the way a
// host invokes contract entry points. Payloads:
//
//	g_create          <id>|<commitmentHex>|<prize>|<asset>[|<commitWindow>|<revealWindow>]
//	g_commit_creator  <id>|<answer>
//	g_guess           <id>|<identity>|<answer>   (empty identity = sender)
//	g_reveal          <id>|<answer>
//	g_claim           <id>|<identity>
//	g_is_winner       <id>|<identity>
//	g_get             <id>
//	g_winners         <id>
//
// Answers are the last field and may themselves contain '|'. Prize amounts
// are decimal strings ("1.000").
func Call(host sdk.Host, hasher sdk.Hasher, action string, payload string) (*string, error) {
	c := New(host, hasher)
	in := payload
	id, err := parseU64(nextField(&in), "game id")
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionCreate:
		args, err := parseCreateArgs(id, in)
		if err != nil {
			return nil, err
		}
		g, err := c.Create(args)
		if err != nil {
			return nil, err
		}
		return ret(UInt64ToString(g.ID)), nil

	case ActionCommitCreator:
		return nil, c.SetCommitCreator(id, in)

	case ActionGuess:
		identity := sdk.Address(nextField(&in))
		ok, err := c.Guess(id, identity, in)
		if err != nil {
			return nil, err
		}
		return ret(boolString(ok)), nil

	case ActionReveal:
		return nil, c.RevealProposal(id, in)

	case ActionClaim:
		amount, err := c.Claim(id, sdk.Address(in))
		if err != nil {
			return nil, err
		}
		return ret(sdk.FormatAmount(amount)), nil

	case ActionIsWinner:
		ok, err := c.IsWinner(id, sdk.Address(in))
		if err != nil {
			return nil, err
		}
		return ret(boolString(ok)), nil

	case ActionGet:
		if err := noMoreArgs(in); err != nil {
			return nil, err
		}
		info, err := c.GetGame(id)
		if err != nil {
			return nil, err
		}
		s, err := ToJSON(info, "game")
		if err != nil {
			return nil, err
		}
		return &s, nil

	case ActionWinners:
		if err := noMoreArgs(in); err != nil {
			return nil, err
		}
		list, err := c.Winners(id)
		if err != nil {
			return nil, err
		}
		s, err := ToJSON(list, "winners")
		if err != nil {
			return nil, err
		}
		return &s, nil
	}
	return nil, errors.Wrapf(ErrUnknownAction, "%q", action)
}

// parseCreateArgs reads commitment, prize, asset and the optional windows.
func parseCreateArgs(id uint64, in string) (CreateArgs, error) {
	args := CreateArgs{ID: id, Windows: DefaultWindows, Asset: sdk.AssetHive}
	args.Commitment = nextField(&in)

	if prize := nextField(&in); prize != "" {
		units, err := sdk.ParseAmount(prize)
		if err != nil {
			return args, errors.Wrapf(ErrInvalidArgs, "prize: %v", err)
		}
		args.Prize = units
	}
	if asset := nextField(&in); asset != "" {
		args.Asset = sdk.Asset(asset)
	}
	if w := nextField(&in); w != "" {
		v, err := parseU64(w, "commit window")
		if err != nil {
			return args, err
		}
		args.Windows.Commit = v
	}
	if w := nextField(&in); w != "" {
		v, err := parseU64(w, "reveal window")
		if err != nil {
			return args, err
		}
		args.Windows.Reveal = v
	}
	return args, noMoreArgs(in)
}

func noMoreArgs(in string) error {
	if in != "" {
		return errors.Wrapf(ErrInvalidArgs, "too many arguments: %q", in)
	}
	return nil
}

func ret(s string) *string { return &s }
