package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"okinoko-guess_reveal/chain"
	"okinoko-guess_reveal/contract"
	"okinoko-guess_reveal/sdk"
)

// exec sends one contract action as a transaction from --from and prints the
// result followed by the events it emitted.
func (a *app) exec(cmd *cobra.Command, intents []sdk.Intent, action, payload string) error {
	from, err := a.sender()
	if err != nil {
		return err
	}
	return a.withChain(func(ch *chain.Chain) error {
		height := ch.Height()
		var out *string
		err := ch.Execute(from, intents, func(h sdk.Host) error {
			var err error
			out, err = contract.Call(h, chain.Keccak256Hasher{}, action, payload)
			return err
		})
		if err != nil {
			mlog.Warn("tx reverted", "action", action, "from", from, "height", height, "err", err)
			return err
		}
		w := cmd.OutOrStdout()
		if out != nil {
			fmt.Fprintln(w, *out)
		}
		for _, ev := range ch.Events() {
			fmt.Fprintln(w, ev)
		}
		return nil
	})
}

// query runs a read-only action at the current height.
func (a *app) query(cmd *cobra.Command, action, payload string) error {
	return a.withChain(func(ch *chain.Chain) error {
		return ch.Query(sdk.Address(a.from), func(h sdk.Host) error {
			out, err := contract.Call(h, chain.Keccak256Hasher{}, action, payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), *out)
			return nil
		})
	})
}

func digestHex(answer string) string {
	return hex.EncodeToString(chain.Keccak256Hasher{}.Hash([]byte(answer)))
}

func addGameIDFlag(cmd *cobra.Command, id *uint64) {
	cmd.Flags().Uint64Var(id, "id", 0, "game id")
}

func (a *app) createCmd() *cobra.Command {
	var (
		id                   uint64
		answer, digest       string
		prize, asset         string
		commitWin, revealWin uint64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game and escrow its prize",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if answer != "" && digest != "" {
				return errors.New("use either --answer or --digest")
			}
			if answer != "" {
				digest = digestHex(answer)
			}
			as, err := a.asset(asset)
			if err != nil {
				return err
			}
			units := a.cfg.Game.DefaultPrize
			if prize != "" {
				if units, err = sdk.ParseAmount(prize); err != nil {
					return err
				}
			}
			if commitWin == 0 {
				commitWin = a.cfg.Game.CommitWindow
			}
			if revealWin == 0 {
				revealWin = a.cfg.Game.RevealWindow
			}
			var intents []sdk.Intent
			if units > 0 {
				intents = append(intents, contract.AllowanceIntent(units, as))
			}
			payload := fmt.Sprintf("%d|%s|%s|%s|%d|%d", id, digest, sdk.FormatAmount(units), as, commitWin, revealWin)
			return a.exec(cmd, intents, contract.ActionCreate, payload)
		},
	}
	addGameIDFlag(cmd, &id)
	cmd.Flags().StringVar(&answer, "answer", "", "creator answer, hashed locally")
	cmd.Flags().StringVar(&digest, "digest", "", "hex digest of the creator answer")
	cmd.Flags().StringVar(&prize, "prize", "", "prize amount, e.g. 1.000 (default from config)")
	cmd.Flags().StringVar(&asset, "asset", "", "prize asset: hive or hbd")
	cmd.Flags().Uint64Var(&commitWin, "commit-window", 0, "commit phase length in blocks")
	cmd.Flags().Uint64Var(&revealWin, "reveal-window", 0, "reveal phase length in blocks")
	return cmd
}

func (a *app) commitCreatorCmd() *cobra.Command {
	var id uint64
	var answer string
	cmd := &cobra.Command{
		Use:   "commit-creator",
		Short: "Set the creator's commitment from an answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exec(cmd, nil, contract.ActionCommitCreator, fmt.Sprintf("%d|%s", id, answer))
		},
	}
	addGameIDFlag(cmd, &id)
	cmd.Flags().StringVar(&answer, "answer", "", "creator answer")
	cmd.MarkFlagRequired("answer")
	return cmd
}

func (a *app) guessCmd() *cobra.Command {
	var id uint64
	var identity, answer string
	cmd := &cobra.Command{
		Use:   "guess",
		Short: "Commit a guess during the commit phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exec(cmd, nil, contract.ActionGuess, fmt.Sprintf("%d|%s|%s", id, identity, answer))
		},
	}
	addGameIDFlag(cmd, &id)
	cmd.Flags().StringVar(&identity, "identity", "", "participant to commit for (default --from)")
	cmd.Flags().StringVar(&answer, "answer", "", "guessed answer")
	cmd.MarkFlagRequired("answer")
	return cmd
}

func (a *app) revealCmd() *cobra.Command {
	var id uint64
	var answer string
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal a committed guess during the reveal phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exec(cmd, nil, contract.ActionReveal, fmt.Sprintf("%d|%s", id, answer))
		},
	}
	addGameIDFlag(cmd, &id)
	cmd.Flags().StringVar(&answer, "answer", "", "the answer committed earlier")
	cmd.MarkFlagRequired("answer")
	return cmd
}

func (a *app) claimCmd() *cobra.Command {
	var id uint64
	var identity string
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Pay a winner's share once the game is closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exec(cmd, nil, contract.ActionClaim, fmt.Sprintf("%d|%s", id, identity))
		},
	}
	addGameIDFlag(cmd, &id)
	cmd.Flags().StringVar(&identity, "identity", "", "winner to pay (default --from)")
	return cmd
}

func (a *app) isWinnerCmd() *cobra.Command {
	var id uint64
	var identity string
	cmd := &cobra.Command{
		Use:   "is-winner",
		Short: "Report whether an identity is a registered winner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.query(cmd, contract.ActionIsWinner, fmt.Sprintf("%d|%s", id, identity))
		},
	}
	addGameIDFlag(cmd, &id)
	cmd.Flags().StringVar(&identity, "identity", "", "identity to check")
	cmd.MarkFlagRequired("identity")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.query(cmd, contract.ActionGet, strconv.FormatUint(id, 10))
		},
	}
	addGameIDFlag(cmd, &id)
	return cmd
}

func (a *app) winnersCmd() *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:   "winners",
		Short: "List a game's winners in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.query(cmd, contract.ActionWinners, strconv.FormatUint(id, 10))
		},
	}
	addGameIDFlag(cmd, &id)
	return cmd
}

func (a *app) hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <answer>",
		Short: "Print the keccak256 digest of an answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), digestHex(args[0]))
			return nil
		},
	}
}

func (a *app) mineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine [blocks]",
		Short: "Seal empty blocks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := uint64(1)
			if len(args) == 1 {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return errors.Wrapf(err, "blocks %q", args[0])
				}
				n = v
			}
			return a.withChain(func(ch *chain.Chain) error {
				if err := ch.Mine(n); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ch.Height())
				return nil
			})
		},
	}
}

func (a *app) depositCmd() *cobra.Command {
	var to, amount, asset string
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Credit an account from the local faucet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.asset(asset)
			if err != nil {
				return err
			}
			units, err := sdk.ParseAmount(amount)
			if err != nil {
				return err
			}
			addr := sdk.Address(to)
			if addr == "" {
				if addr, err = a.sender(); err != nil {
					return err
				}
			}
			return a.withChain(func(ch *chain.Chain) error {
				if err := ch.Deposit(addr, units, as); err != nil {
					return err
				}
				bal, err := ch.Balance(addr, as)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", addr, sdk.FormatAmount(bal), as)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "account to credit (default --from)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 1.000")
	cmd.Flags().StringVar(&asset, "asset", "", "hive or hbd")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *app) balanceCmd() *cobra.Command {
	var addr, asset string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show an account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.asset(asset)
			if err != nil {
				return err
			}
			return a.withChain(func(ch *chain.Chain) error {
				who := sdk.Address(addr)
				switch {
				case who == "contract":
					who = ch.Self()
				case who == "":
					if who, err = a.sender(); err != nil {
						return err
					}
				}
				bal, err := ch.Balance(who, as)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", who, sdk.FormatAmount(bal), as)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "account (default --from, \"contract\" for the game account)")
	cmd.Flags().StringVar(&asset, "asset", "", "hive or hbd")
	return cmd
}

func (a *app) heightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "height",
		Short: "Print the current block height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withChain(func(ch *chain.Chain) error {
				fmt.Fprintln(cmd.OutOrStdout(), ch.Height())
				return nil
			})
		},
	}
}
