package contract

import (
	"math"

	"github.com/pkg/errors"

	"okinoko-guess_reveal/sdk"
)

// CreateArgs configures a new game instance.
type CreateArgs struct {
	ID uint64
	// Commitment is the creator's hex digest of the secret answer. It may be
	// empty when the creator commits later through SetCommitCreator.
	Commitment string
	Prize      uint64
	Asset      sdk.Asset
	Windows    Windows
}

// Create starts game args.ID with the sender as creator. Deadlines are
// counted from the current height. A non-zero prize is drawn from the
// creator into the contract; the call must carry a transfer.allow intent
// covering it.
func (c *Contract) Create(args CreateArgs) (*Game, error) {
	cl := c.begin()

	if err := validateCreateArgs(&args, cl.height()); err != nil {
		glog.Error("Create", "id", args.ID, "err", err)
		return nil, err
	}
	if cl.sender() == "" || len(cl.sender()) > math.MaxUint16 {
		return nil, errors.Wrapf(ErrAuthorization, "invalid creator address %q", cl.sender())
	}
	exists, err := cl.ws.has(gameMetaKey(args.ID))
	if err != nil {
		return nil, errors.Wrapf(err, "create game %d", args.ID)
	}
	if exists {
		glog.Error("Create", "id", args.ID, "err", ErrGameExists)
		return nil, errors.Wrapf(ErrGameExists, "game %d", args.ID)
	}
	if args.Prize > 0 {
		if err := requireAllowance(cl.env.Intents, args.Prize, args.Asset); err != nil {
			glog.Error("Create", "id", args.ID, "err", err)
			return nil, err
		}
	}

	g := initNewGame(args, cl.sender(), cl.height())
	saveMeta(cl.ws, g)
	saveState(cl.ws, g)
	if args.Commitment != "" {
		commitments{ws: cl.ws, gameID: g.ID}.set(g.Creator, args.Commitment)
	}

	if g.TotalPrize > 0 {
		if err := c.host.Draw(g.TotalPrize, g.Asset); err != nil {
			glog.Error("Create", "id", g.ID, "draw", g.TotalPrize, "err", err)
			return nil, errors.Wrapf(err, "escrow prize of game %d", g.ID)
		}
	}
	if err := cl.ws.flush(); err != nil {
		return nil, errors.Wrapf(err, "create game %d", g.ID)
	}

	glog.Debug("Create", "id", g.ID, "creator", g.Creator, "guessDeadline", g.GuessDeadline, "revealDeadline", g.RevealDeadline)
	c.emitGameCreated(g)
	return g, nil
}

// initNewGame builds the game record. The height is passed in so the
// function stays independent of the host environment.
func initNewGame(args CreateArgs, creator sdk.Address, height uint64) *Game {
	return &Game{
		ID:             args.ID,
		Creator:        creator,
		GuessDeadline:  height + args.Windows.Commit,
		RevealDeadline: height + args.Windows.Commit + args.Windows.Reveal,
		TotalPrize:     args.Prize,
		Asset:          args.Asset,
		CreatedAt:      height,
	}
}

func validateCreateArgs(args *CreateArgs, height uint64) error {
	if args.Windows.Commit == 0 || args.Windows.Reveal == 0 {
		return errors.Wrap(ErrInvalidArgs, "commit and reveal windows must be at least one block")
	}
	if args.Windows.Commit > math.MaxUint64-height || args.Windows.Reveal > math.MaxUint64-height-args.Windows.Commit {
		return errors.Wrap(ErrInvalidArgs, "deadline overflows block height")
	}
	if !args.Asset.Valid() {
		return errors.Wrapf(ErrInvalidArgs, "unsupported asset %q", args.Asset)
	}
	if args.Commitment != "" {
		d, err := normalizeDigest(args.Commitment)
		if err != nil {
			return err
		}
		args.Commitment = d
	}
	return nil
}

// requireAllowance looks for the first transfer.allow intent and checks it
// covers amount of asset.
func requireAllowance(intents []sdk.Intent, amount uint64, asset sdk.Asset) error {
	for _, intent := range intents {
		if intent.Type != "transfer.allow" {
			continue
		}
		token := sdk.Asset(intent.Args["token"])
		if token != asset {
			return errors.Wrapf(ErrAllowance, "intent token %q, prize asset %q", token, asset)
		}
		limit, err := sdk.ParseAmount(intent.Args["limit"])
		if err != nil {
			return errors.Wrapf(ErrAllowance, "intent limit: %v", err)
		}
		if limit < amount {
			return errors.Wrapf(ErrAllowance, "intent limit %s below prize %s",
				sdk.FormatAmount(limit), sdk.FormatAmount(amount))
		}
		return nil
	}
	return errors.Wrapf(ErrAllowance, "no transfer.allow intent for %s %s", sdk.FormatAmount(amount), asset)
}

// AllowanceIntent builds the transfer.allow intent a creator attaches to
// fund a prize.
func AllowanceIntent(amount uint64, asset sdk.Asset) sdk.Intent {
	return sdk.Intent{
		Type: "transfer.allow",
		Args: map[string]string{
			"limit": sdk.FormatAmount(amount),
			"token": asset.String(),
		},
	}
}
